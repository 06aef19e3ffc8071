// checklint validates checklist definition files before they are
// uploaded to a gateway.
//
//	checklint def1.json def2.json ...
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/autocheck-dev/autocheck/internal/checklist"
)

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: checklint <definition.json> [...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := 0
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed++
			continue
		}
		cl, err := checklist.LoadJSON(f)
		f.Close()
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed++
			continue
		}
		log.Printf("%s: ok (%s, %d sections, %d questions)",
			path, cl.ID, len(cl.Sections), cl.QuestionCount())
	}
	if failed > 0 {
		os.Exit(1)
	}
}
