// Command vjp checks the differentiable operator catalogue against finite
// differences.
//
// Usage:
//
//	vjp version
//	vjp gradcheck [-lazy] [-seed N] [-tol X] [-step H] [-workers N]
//
// klog flags (-v, -logtostderr, ...) are accepted before or after the
// subcommand.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/born-ml/vjp/internal/gradcheck"
)

const version = "v0.1.0"

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "vjp %s - reverse-mode operator gradient checks\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  gradcheck  Compare every operator's gradient with central differences")
	fmt.Fprintln(out, "\nRun 'vjp gradcheck -help' for its flags.")
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "version":
		fmt.Printf("vjp %s\n", version)

	case "gradcheck":
		opts := parseGradcheckFlags(args[1:])
		err := exceptions.TryCatch[error](func() {
			check(runGradcheck(os.Stdout, opts))
		})
		if err != nil {
			klog.Errorf("gradcheck: %+v", err)
			os.Exit(1)
		}

	default:
		klog.Errorf("Unknown command %q. See 'vjp -help'.", args[0])
		os.Exit(2)
	}
}

// parseGradcheckFlags parses the gradcheck subcommand flags.
func parseGradcheckFlags(args []string) gradcheckOptions {
	fs := flag.NewFlagSet("gradcheck", flag.ExitOnError)
	klog.InitFlags(fs)
	var opts gradcheckOptions
	fs.BoolVar(&opts.lazy, "lazy", false, "Record operators lazily and realize values on demand.")
	fs.Uint64Var(&opts.seed, "seed", 0, "Seed for the random inputs and output projections.")
	fs.Float64Var(&opts.tolerance, "tol", gradcheck.DefaultTolerance,
		"Maximum absolute difference between analytic and numerical gradients.")
	fs.Float64Var(&opts.step, "step", gradcheck.DefaultStep, "Central-difference step.")
	fs.IntVar(&opts.workers, "workers", 0, "Goroutines used by CPU kernels; 0 uses one per CPU.")
	_ = fs.Parse(args) // ExitOnError
	if fs.NArg() > 0 {
		klog.Errorf("Unexpected arguments %q. See 'vjp gradcheck -help'.", fs.Args())
		os.Exit(2)
	}
	return opts
}

// check panics with err, to be caught by the TryCatch in main.
func check(err error) {
	if err != nil {
		panic(err)
	}
}
