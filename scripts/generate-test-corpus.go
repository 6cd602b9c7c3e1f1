//go:build ignore

// Package main generates a synthetic document corpus for ingestion and
// search benchmarking.
// Usage: go run scripts/generate-test-corpus.go -files 1000 -output testdata/bench
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	numFiles  = flag.Int("files", 1000, "Number of files to generate")
	outputDir = flag.String("output", "testdata/bench", "Output directory")
	seed      = flag.Int64("seed", 42, "Random seed for reproducibility")
)

// noteTemplate produces a markdown document with headings, prose, and a
// scattering of entity-bearing sentences, so a generated corpus exercises
// both the markdown decoder's heading-based title detection and the entity extractor's regex
// patterns the same way a real note collection would.
var noteTemplate = `# %s

## Summary

%s is responsible for %s across the %s team. This note was last reviewed by
%s and touches base with %s on a recurring basis.

## Contact

Reach the owner at %s or by phone at %s. Escalations go to %s, which
operates out of the %s office.

## Details

The %s initiative started around %s and has a budget of %s. Related work is
tracked under the %s project, in partnership with %s.

## Notes

- Owner: %s
- Last updated: %s
- Related systems: %s, %s
- Contact: %s
`

// memoTemplate produces a plain-text document with a similar entity mix but
// no markdown structure, exercising the plaintext decoder path.
var memoTemplate = `%s

From: %s <%s>
Date: %s
Re: %s

%s reports that the %s rollout is proceeding. Budget remains at %s, and the
next sync with %s is scheduled. Call %s with questions.

%s signing off.
`

var (
	topics = []string{
		"Onboarding", "Billing Reconciliation", "Infrastructure Migration",
		"Customer Support Rotation", "Security Review", "Release Planning",
		"Data Retention Policy", "Vendor Evaluation", "Incident Postmortem",
		"Roadmap Planning", "Hiring Pipeline", "Budget Review",
	}
	people = []string{
		"Alice Chen", "Marcus Webb", "Priya Natarajan", "Diego Fernandez",
		"Hana Kobayashi", "Liam O'Connor", "Fatima Al-Sayed", "Noah Bergström",
	}
	orgs = []string{
		"Northwind Logistics", "Acme Corp", "Globex Industries",
		"Initech Solutions", "Umbrella Analytics", "Stark Systems",
	}
	offices = []string{
		"Seattle", "Austin", "Berlin", "Singapore", "Toronto", "remote",
	}
	systems = []string{
		"the billing service", "the search index", "the auth gateway",
		"the ingestion pipeline", "the notification queue", "the reporting warehouse",
	}
	dates   = []string{"2024-03-01", "2024-06-15", "2024-09-20", "2025-01-10", "2025-04-04"}
	amounts = []string{"$12,500", "$48,000", "$3,200", "$97,750", "$500,000"}
)

func randomWord(pool []string) string {
	return pool[rand.Intn(len(pool))]
}

func emailFor(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	if len(parts) < 2 {
		return parts[0] + "@example.com"
	}
	return parts[0] + "." + parts[len(parts)-1] + "@example.com"
}

func phone() string {
	return fmt.Sprintf("(%03d) %03d-%04d", 200+rand.Intn(700), rand.Intn(1000), rand.Intn(10000))
}

func main() {
	flag.Parse()
	rand.Seed(*seed)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	subdirs := []string{"notes", "memos"}
	for _, subdir := range subdirs {
		if err := os.MkdirAll(filepath.Join(*outputDir, subdir), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating subdirectory %s: %v\n", subdir, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Generating %d files in %s...\n", *numFiles, *outputDir)

	noteFiles := *numFiles * 70 / 100
	memoFiles := *numFiles - noteFiles

	generated := 0

	for i := 0; i < noteFiles; i++ {
		if err := generateNoteFile(i); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating note %d: %v\n", i, err)
			continue
		}
		generated++
	}

	for i := 0; i < memoFiles; i++ {
		if err := generateMemoFile(i); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating memo %d: %v\n", i, err)
			continue
		}
		generated++
	}

	fmt.Printf("Generated %d files successfully.\n", generated)
}

func generateNoteFile(index int) error {
	topic := randomWord(topics)
	owner := randomWord(people)
	reviewer := randomWord(people)
	org := randomWord(orgs)
	office := randomWord(offices)
	system1 := randomWord(systems)
	system2 := randomWord(systems)
	date := randomWord(dates)
	amount := randomWord(amounts)

	content := fmt.Sprintf(noteTemplate,
		topic,
		topic, strings.ToLower(topic), org,
		owner, reviewer,
		emailFor(owner), phone(), org,
		office,
		strings.ToLower(topic), date, amount,
		system1, org,
		owner, date, system1, system2, emailFor(owner),
	)

	filename := filepath.Join(*outputDir, "notes", fmt.Sprintf("note_%d.md", index))
	return os.WriteFile(filename, []byte(content), 0644)
}

func generateMemoFile(index int) error {
	topic := randomWord(topics)
	sender := randomWord(people)
	system := randomWord(systems)
	amount := randomWord(amounts)
	recipient := randomWord(people)
	date := randomWord(dates)

	content := fmt.Sprintf(memoTemplate,
		strings.ToUpper(topic),
		sender, emailFor(sender),
		date, topic,
		sender, strings.TrimPrefix(system, "the "), amount,
		recipient, phone(),
		sender,
	)

	filename := filepath.Join(*outputDir, "memos", fmt.Sprintf("memo_%d.txt", index))
	return os.WriteFile(filename, []byte(content), 0644)
}
