package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	seopost "github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/yamlutil"
)

// runSections prints the section rule table.
func runSections(args []string, env *Environment) error {
	f, rest, err := parseSectionsFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printSectionsUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: sections takes no arguments", ErrUsage)
	}

	if f.yaml {
		data, err := yamlutil.Marshal(seopost.Rules())
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(data)
		return err
	}
	return printRuleTable(env.Stdout, seopost.Rules())
}

func printRuleTable(w io.Writer, rules []*seopost.SectionRule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MARKER\tNAME\tWRAPPER\tREQUIRED\tWORDS\tIMAGE\tSCHEMA")
	for _, r := range rules {
		required := ""
		if r.Required {
			required = "yes"
		}
		fmt.Fprintf(tw, "{%s}\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, r.Wrapper, required, wordRange(r), r.ImagePosition(), r.Schema)
	}
	return tw.Flush()
}

// wordRange formats the word bounds, "-" when unbounded.
func wordRange(r *seopost.SectionRule) string {
	switch {
	case r.MinWords == 0 && r.MaxWords == 0:
		return "-"
	case r.MaxWords == 0:
		return strconv.Itoa(r.MinWords) + "+"
	default:
		return strconv.Itoa(r.MinWords) + "-" + strconv.Itoa(r.MaxWords)
	}
}
