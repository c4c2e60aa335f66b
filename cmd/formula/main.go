package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	formula "github.com/PhilipLudington/AgentiteZ-sub001"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		asInt, funcs bool
	)
	e := formula.New()
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		nm := strings.TrimSpace(d[0])
		// The value is itself a formula, so -given scale=1/3 works.
		v, err := e.Evaluate(d[1])
		if err != nil {
			return fmt.Errorf("setting %s: %w", nm, err)
		}
		e.SetVar(nm, v)
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file with one formula per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addgiven)
	flag.BoolVar(&asInt, "int", false, "truncate results toward zero")
	flag.BoolVar(&funcs, "funcs", false, "list built-in functions and exit")
	flag.Parse()

	if funcs {
		for _, name := range formula.Functions() {
			fmt.Println(name)
		}
		return
	}

	code := 0
	eval := func(src string) {
		if strings.TrimSpace(src) == "" {
			return
		}
		if asInt {
			n, err := e.EvaluateInt(src)
			if err != nil {
				log.Println(err)
				code = 1
				return
			}
			fmt.Println(n)
			return
		}
		v, err := e.Evaluate(src)
		if err != nil {
			log.Println(err)
			code = 1
			return
		}
		fmt.Printf(verb+"\n", v)
	}

	for _, arg := range flag.Args() {
		eval(arg)
	}
	if inname != "" || flag.NArg() == 0 {
		f := os.Stdin
		if inname != "" {
			var err error
			f, err = os.Open(inname)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
		}
		scan := bufio.NewScanner(f)
		for scan.Scan() {
			eval(scan.Text())
		}
		if err := scan.Err(); err != nil {
			log.Fatal(err)
		}
	}
	os.Exit(code)
}
