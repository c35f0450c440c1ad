package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/urfave/cli/v2"

	hypothesis "github.com/robertknight/hypothesis"
	"github.com/robertknight/hypothesis/core"
	"github.com/robertknight/hypothesis/exitcodes"
	"github.com/robertknight/hypothesis/harness"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	svc := hypothesis.NewService()

	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "hypothesis"
	app.Usage = "Property-based test runner"
	app.Description = "hypothesis runs property-based tests through the harness lifecycle"
	app.Flags = svc.CLIFlags()
	app.Action = func(ctx *cli.Context) error {
		return svc.Run(ctx.Context, ctx, smokeSuite())
	}
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if hypothesis.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			}
		}
	}

	if err := app.Run(os.Args); err != nil {
		log.Crit("Application failed", "message", err)
	}
}

// smokeSuite exercises the engine end to end: a couple of always-true
// properties plus a parametrized family.
func smokeSuite() *harness.Suite {
	suite := harness.NewSuite("smoke")

	suite.Add("smoke/reverse_twice_is_identity", core.Given(
		"reverse twice is identity",
		prop.ForAll(func(xs []int) bool {
			rev := func(in []int) []int {
				out := make([]int, len(in))
				for i, v := range in {
					out[len(in)-1-i] = v
				}
				return out
			}
			twice := rev(rev(xs))
			if len(twice) != len(xs) {
				return false
			}
			for i := range xs {
				if twice[i] != xs[i] {
					return false
				}
			}
			return true
		}, gen.SliceOf(gen.Int())),
	))

	suite.Add("smoke/concat_length", core.Given(
		"concatenation adds lengths",
		prop.ForAll(func(a, b string) bool {
			return len(a+b) == len(a)+len(b)
		}, gen.AnyString(), gen.AnyString()),
	))

	for _, bound := range []int{10, 100, 1000} {
		b := bound
		suite.AddParametrized("smoke/bounded_int", fmt.Sprintf("bound=%d", b), core.Given(
			"bounded ints stay in range",
			prop.ForAll(func(n int) bool {
				return n >= 0 && n <= b
			}, gen.IntRange(0, b)),
		))
	}

	return suite
}
