package main

import (
	"fmt"
	"os"

	"github.com/abc-lang/abcrt/pkg/arena"
	"github.com/abc-lang/abcrt/pkg/rt"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "abcrt",
		Short: "Standalone harness for the ABC value-stack runtime core",
	}

	// selftest command
	var selftestSize int
	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the runtime's internal invariant checks and report pass/fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := runSelftest(selftestSize)
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
	selftestCmd.Flags().IntVar(&selftestSize, "size", 1<<20, "Arena size in bytes")

	// roundtrip command
	var contextSize int
	roundtripCmd := &cobra.Command{
		Use:   "roundtrip [decimal-integer]",
		Short: "Introduce a decimal integer literal and peek it back, verifying the round trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := arena.NewGroup(contextSize)
			c := rt.NewContext(g)
			if st := c.IntroIStr(args[0]); st != rt.OK {
				return fmt.Errorf("intro_istr %q: %v", args[0], st)
			}
			out, st := c.PeekIStr()
			if st != rt.OK {
				return fmt.Errorf("peek_istr: %v", st)
			}
			fmt.Println(out)
			if out != args[0] && !equivalentLiteral(args[0], out) {
				return fmt.Errorf("round trip mismatch: %q != %q", args[0], out)
			}
			return nil
		},
	}
	roundtripCmd.Flags().IntVarP(&contextSize, "context-size", "n", 1<<16, "Arena size in bytes")

	// arena-stats command
	var statsSize int
	statsCmd := &cobra.Command{
		Use:   "arena-stats",
		Short: "Report allocator capacity and usage for a freshly created context",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := arena.NewEnv()
			g := env.NewGroup(statsSize)
			c := rt.NewContext(g)

			fmt.Printf("capacity:        %d bytes\n", g.SizeBytes())
			fmt.Printf("groups created:  %d\n", env.GroupsCreated())
			fmt.Printf("groups live:     %d\n", env.GroupCount())

			if st := c.IntroI64(1073741824); st != rt.OK { // smallest value forcing a bignum
				return fmt.Errorf("intro_i64: %v", st)
			}
			fmt.Printf("after one bignum alloc: %d allocated, %d freed\n", c.BytesAllocated, c.BytesFreed)
			c.Drop()
			fmt.Printf("after drop:             %d allocated, %d freed\n", c.BytesAllocated, c.BytesFreed)

			env.Release(g)
			fmt.Printf("groups live after release: %d\n", env.GroupCount())
			return nil
		},
	}
	statsCmd.Flags().IntVar(&statsSize, "size", 1<<20, "Arena size in bytes")

	rootCmd.AddCommand(selftestCmd, roundtripCmd, statsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// equivalentLiteral tolerates the one normalization peek_istr performs
// that a literal round trip does not have to preserve verbatim: a bare
// "0" is canonical regardless of how many times it was negated away.
func equivalentLiteral(in, out string) bool {
	return in == "-0" && out == "0"
}
