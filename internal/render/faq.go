package render

import (
	"regexp"
	"strings"
)

// FAQ is one extracted question and answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var (
	questionLine = regexp.MustCompile(`^Q\d*:?\s+`)
	answerLine   = regexp.MustCompile(`^A\d*:?\s+`)

	// RE2 has no lookahead: the question span runs up to the next A, which
	// the answer pattern then matches independently.
	inlineQuestion = regexp.MustCompile(`Q\d*:?\s*([^QA]+)A`)
	inlineAnswer   = regexp.MustCompile(`A\d*:?\s*([^QA]+)`)
)

// ExtractFAQs pulls Q/A pairs out of section lines.
//
// The line pass pairs each "Q:" line with the first following "A:" line,
// giving up when another question starts first. If it finds nothing, the
// inline pass joins all lines and pairs the i-th question span with the i-th
// answer span. The inline pass mispairs when question and answer counts
// differ; that is accepted over rejecting irregular input.
func ExtractFAQs(lines []string) []FAQ {
	if faqs := extractLinePairs(lines); len(faqs) > 0 {
		return faqs
	}
	return extractInlinePairs(strings.Join(lines, " "))
}

func extractLinePairs(lines []string) []FAQ {
	var faqs []FAQ
	for i, line := range lines {
		loc := questionLine.FindStringIndex(line)
		if loc == nil {
			continue
		}
		question := strings.TrimSpace(line[loc[1]:])

		for _, next := range lines[i+1:] {
			if questionLine.MatchString(next) {
				break
			}
			if aloc := answerLine.FindStringIndex(next); aloc != nil {
				answer := strings.TrimSpace(next[aloc[1]:])
				if question != "" && answer != "" {
					faqs = append(faqs, FAQ{Question: question, Answer: answer})
				}
				break
			}
		}
	}
	return faqs
}

func extractInlinePairs(text string) []FAQ {
	questions := inlineQuestion.FindAllStringSubmatch(text, -1)
	answers := inlineAnswer.FindAllStringSubmatch(text, -1)

	n := min(len(questions), len(answers))
	var faqs []FAQ
	for i := 0; i < n; i++ {
		q := strings.TrimSpace(questions[i][1])
		a := strings.TrimSpace(answers[i][1])
		if q == "" || a == "" {
			continue
		}
		faqs = append(faqs, FAQ{Question: q, Answer: a})
	}
	return faqs
}
