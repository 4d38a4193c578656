// Command jtest is the golden-file test harness for the translator. It runs
// the full pipeline over a set of source files and compares the outcome
// against per-file golden JSON records. Golden files embed a hash of the
// source they were generated from, so a stale golden is reported rather
// than silently compared.
//
// Goldens are not checked in. Seed them before the first suite run, and
// again after any intended output change:
//
//	jtest -generate-golden 'testdata/*.java'
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/Kashinulala/j2py/pkg/config"
	"github.com/Kashinulala/j2py/pkg/translator"
)

type Golden struct {
	SourceHash string   `json:"source_hash"`
	Code       string   `json:"code"`
	Errors     []string `json:"errors"`
	Warnings   []string `json:"warnings"`
}

type FileResult struct {
	File    string `json:"file"`
	Status  string `json:"status"` // PASS, FAIL, STALE, MISSING, ERROR
	Message string `json:"message,omitempty"`
	Diff    string `json:"diff,omitempty"`
}

var (
	testFiles      = flag.String("test-files", "testdata/*.java", "Glob pattern(s) for files to test (space-separated).")
	generateGolden = flag.String("generate-golden", "", "Generate golden files for a source file or glob pattern.")
	goldenDir      = flag.String("dir", "", "Directory for golden JSON files (defaults to the source file dir).")
	outputJSON     = flag.String("output", "", "Optional output file for the JSON test report.")
	jobs           = flag.Int("j", 4, "Number of parallel test jobs.")
	verbose        = flag.Bool("v", false, "Enable verbose logging.")
)

const (
	cRed   = "\x1b[91m"
	cGreen = "\x1b[92m"
	cCyan  = "\x1b[96m"
	cNone  = "\x1b[0m"
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if *generateGolden != "" {
		if err := generateGoldens(*generateGolden); err != nil {
			log.Fatalf("%s[ERROR]%s %v", cRed, cNone, err)
		}
		return
	}
	runSuite()
}

func goldenPath(srcPath string) string {
	dir := filepath.Dir(srcPath)
	if *goldenDir != "" {
		dir = *goldenDir
	}
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	return filepath.Join(dir, base+".golden.json")
}

func hashSource(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func translateFile(path string) (Golden, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Golden{}, err
	}
	res := translator.Translate(string(data), config.NewConfig())
	g := Golden{SourceHash: hashSource(data), Code: res.Code, Errors: []string{}, Warnings: []string{}}
	for _, d := range res.Diagnostics.Errors() {
		g.Errors = append(g.Errors, d.String())
	}
	for _, d := range res.Diagnostics.Warnings() {
		g.Warnings = append(g.Warnings, d.String())
	}
	return g, nil
}

func writeGolden(srcPath string) error {
	g, err := translateFile(srcPath)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	out := goldenPath(srcPath)
	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		return err
	}
	fmt.Printf("%s[GOLDEN]%s %s -> %s\n", cCyan, cNone, srcPath, out)
	return nil
}

func generateGoldens(pattern string) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files matched %q", pattern)
	}
	for _, m := range matches {
		if err := writeGolden(m); err != nil {
			return err
		}
	}
	return nil
}

func collectFiles() []string {
	var files []string
	for _, pattern := range strings.Fields(*testFiles) {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			log.Fatalf("%s[ERROR]%s bad pattern %q: %v", cRed, cNone, pattern, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files
}

func runSuite() {
	files := collectFiles()
	if len(files) == 0 {
		log.Fatalf("%s[ERROR]%s no test files matched %q", cRed, cNone, *testFiles)
	}

	results := make([]FileResult, len(files))
	var wg sync.WaitGroup
	sem := make(chan struct{}, *jobs)
	for i, f := range files {
		wg.Add(1)
		go func(i int, f string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = checkFile(f)
		}(i, f)
	}
	wg.Wait()

	passed := 0
	for _, r := range results {
		switch r.Status {
		case "PASS":
			passed++
			if *verbose {
				fmt.Printf("%s[PASS]%s %s\n", cGreen, cNone, r.File)
			}
		default:
			fmt.Printf("%s[%s]%s %s: %s\n", cRed, r.Status, cNone, r.File, r.Message)
			if r.Diff != "" {
				fmt.Println(r.Diff)
			}
		}
	}
	fmt.Printf("%d/%d passed\n", passed, len(results))

	if *outputJSON != "" {
		data, _ := json.MarshalIndent(results, "", "  ")
		if err := os.WriteFile(*outputJSON, data, 0o644); err != nil {
			log.Fatalf("%s[ERROR]%s writing report: %v", cRed, cNone, err)
		}
	}
	if passed != len(results) {
		os.Exit(1)
	}
}

func checkFile(path string) FileResult {
	got, err := translateFile(path)
	if err != nil {
		return FileResult{File: path, Status: "ERROR", Message: err.Error()}
	}
	goldenData, err := os.ReadFile(goldenPath(path))
	if err != nil {
		return FileResult{File: path, Status: "MISSING",
			Message: fmt.Sprintf("no golden file; run with -generate-golden %s", path)}
	}
	var want Golden
	if err := json.Unmarshal(goldenData, &want); err != nil {
		return FileResult{File: path, Status: "ERROR", Message: "corrupt golden: " + err.Error()}
	}
	if want.SourceHash != got.SourceHash {
		return FileResult{File: path, Status: "STALE",
			Message: "source changed since the golden was generated; regenerate it"}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		return FileResult{File: path, Status: "FAIL", Message: "output mismatch (-golden +got)", Diff: diff}
	}
	return FileResult{File: path, Status: "PASS"}
}
