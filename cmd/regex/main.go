// Command regex compiles a pattern and reports how it matches against
// each input argument.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bytekleene/kleene"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <pattern> [input]...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	pattern := flag.Arg(0)
	inputs := flag.Args()[1:]

	re, err := kleene.Compile(pattern)
	if err != nil {
		log.Fatalf("regex: %v", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for i, input := range inputs {
		start, length, terminateState, acceptedState, ok := re.SearchDetail([]byte(input), 0)
		if !ok {
			length = -1
		}
		fmt.Fprintf(w, "%d\t%t\t%d\t%d\t%d\t%d\n", i, ok, start, length, terminateState, acceptedState)
	}
}
