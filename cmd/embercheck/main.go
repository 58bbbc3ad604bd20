// Command embercheck runs the static type checker against an in-process
// sample class and prints its diagnostics, colorized the way the
// teacher's execute.colorizeError does. Reading a real source file is
// out of scope (parsing happens upstream of this repository); this
// binary exists to exercise the checker library end to end and as a
// template for a host embedding it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/logrusorgru/aurora/v4"

	"github.com/emberlang/ember/binder"
	"github.com/emberlang/ember/sema"
	"github.com/emberlang/ember/types"
)

func main() {
	methodsFlag := flag.String("methods", "", "comma-separated list of methods to check (default: all)")
	envFile := flag.String("env", ".env", "path to an optional .env file of checker configuration")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("embercheck: could not load %s: %v", *envFile, err)
	}

	au := aurora.New(aurora.WithColors(os.Getenv("EMBERCHECK_NO_COLOR") == ""))

	universe := types.NewUniverse()
	extensions := types.NewExtensionRegistry()
	class, classType := buildSampleClass(universe)

	checker := sema.New(universe, extensions, binder.NoopPlugin{}, class, classType)
	if *methodsFlag != "" {
		checker.SetMethodsToBeVisited(strings.Split(*methodsFlag, ","))
	}

	checker.VisitClass(class)
	checker.PerformSecondPass()

	diagnostics := checker.Errors()
	if len(diagnostics) == 0 {
		fmt.Println(au.Green("no diagnostics").String())
		return
	}

	for _, err := range diagnostics {
		d, ok := err.(*sema.Diagnostic)
		if !ok {
			fmt.Println(au.Red(err.Error()).String())
			continue
		}
		label := au.Red("error").Bold()
		if d.Severity == sema.SeverityWarning {
			label = au.Yellow("warning").Bold()
		}
		fmt.Printf("%s: %s (%s)\n", label, d.Message, d.Range.StartPos)
	}

	if checker.HasErrors() {
		os.Exit(1)
	}
}
