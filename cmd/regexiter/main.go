// Command regexiter prints the first strings of the language of a
// regular expression, in shortlex order, or dumps the compiled automaton
// as Graphviz DOT.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"regexiter"
)

type cli struct {
	Pattern string `arg:"" help:"Regular expression to enumerate."`
	Count   int    `short:"n" default:"10" help:"Maximum number of strings to print."`
	Backend string `default:"dense" enum:"dense,sparse,nfa" help:"Automaton backend: dense, sparse or nfa."`
	Raw     bool   `help:"Print raw byte strings, skipping the UTF-8 filter."`
	Dot     bool   `help:"Write the automaton as Graphviz DOT and exit."`
}

func main() {
	var params cli
	kong.Parse(&params)

	var (
		it  *regexiter.Iter
		err error
	)
	switch params.Backend {
	case "nfa":
		it, err = regexiter.NewNFA(params.Pattern)
	case "sparse":
		it, err = regexiter.NewSparseDFA(params.Pattern)
	default:
		it, err = regexiter.NewDFA(params.Pattern)
	}
	if err != nil {
		log.Fatal(err)
	}

	if params.Dot {
		it.WriteDot(os.Stdout)
		return
	}

	if params.Raw {
		for i := 0; i < params.Count; i++ {
			b, ok := it.Next()
			if !ok {
				break
			}
			fmt.Printf("%q\n", b)
		}
		return
	}

	text, err := regexiter.NewUTF8(it)
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < params.Count; i++ {
		s, ok := text.Next()
		if !ok {
			break
		}
		fmt.Printf("%q\n", s)
	}
}
