package docs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/finance/config"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Info strings of the fenced code blocks that are executed.
const (
	bashSetup    = "bash setup"    // starts a scenario in a fresh folder
	bashRun      = "bash run"      // output is kept for the next console check
	bashCheck    = "bash check"    // must exit with 0
	consoleCheck = "console check" // expected output of the last bash run
)

// testingNow is the date every documented command believes it is.
const testingNow = "2025-07-15"

var listedTopic = regexp.MustCompile(`(?m)^\*\s+([^:]+):`)

// TestTopics checks that the index lists exactly the embedded topics.
func TestTopics(t *testing.T) {
	readme, err := GetTopic(index)
	if err != nil {
		t.Fatalf("GetTopic(%q) unexpected error: %v", index, err)
	}
	var listed []string
	for _, m := range listedTopic.FindAllStringSubmatch(readme, -1) {
		listed = append(listed, strings.TrimSpace(m[1]))
	}
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("topic %q is listed in %s.md but cannot be loaded: %v", topic, index, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() unexpected error: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in %s.md", topic, index)
		}
	}

	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(\"nope\") succeeded, want an error")
	}
	if got, err := GetTopics("*"); err != nil || !strings.Contains(got, "# ") {
		t.Errorf("GetTopics(\"*\") = %.40q, %v, want every topic", got, err)
	}
}

// TestCodeBlocks runs the documented scenarios with a freshly built fin.
func TestCodeBlocks(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and runs fin")
	}
	bin := t.TempDir()
	build := exec.Command("go", "build", "-o", filepath.Join(bin, "fin"), "../fin/")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("go build fin: %v\n%s", err, out)
	}
	env := scenarioEnv(bin)

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s := scenario{env: env, dir: t.TempDir()}
			for _, b := range codeBlocks(t, file) {
				s.run(t, b)
			}
		})
	}
}

// scenarioEnv is the current environment without any FIN_* variable, with
// bin first in the PATH and a fixed date.
func scenarioEnv(bin string) []string {
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "FIN_") {
			env = append(env, kv)
		}
	}
	return append(env,
		fmt.Sprintf("PATH=%s%c%s", bin, os.PathListSeparator, os.Getenv("PATH")),
		config.EnvTestingNow+"="+testingNow,
	)
}

// block is an executable fenced code block.
type block struct {
	kind    string
	content string
	pos     string // file:line, for error messages
}

// codeBlocks returns the executable blocks of a markdown file, in order.
func codeBlocks(t *testing.T, file string) []block {
	t.Helper()
	src, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("cannot read %s: %v", file, err)
	}

	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(src))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		info := fcb.Info.Segment
		switch kind := string(info.Value(src)); kind {
		case bashSetup, bashRun, bashCheck, consoleCheck:
			var content strings.Builder
			lines := fcb.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				content.Write(seg.Value(src))
			}
			line := bytes.Count(src[:info.Start], []byte{'\n'}) + 1
			blocks = append(blocks, block{kind: kind, content: content.String(), pos: fmt.Sprintf("%s:%d", file, line)})
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

// scenario is the state shared by consecutive blocks of a file.
type scenario struct {
	env  []string
	dir  string
	last string // output of the last bash run
}

func (s *scenario) run(t *testing.T, b block) {
	t.Helper()
	if b.kind == consoleCheck {
		want := strings.TrimSpace(b.content)
		got := strings.ReplaceAll(strings.TrimSpace(s.last), "\t", "        ")
		if got != want {
			t.Errorf("%s: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n\ngot :%q\nwant:%q", b.pos, got, want, got, want)
		}
		return
	}
	if b.kind == bashSetup {
		s.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.content)
	cmd.Dir = s.dir
	cmd.Env = s.env
	out, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		s.last = string(out)
	}
	if err == nil {
		return
	}
	if b.kind == bashCheck {
		t.Errorf("%s: %s failed: %v\n%s", b.pos, b.kind, err, out)
		return
	}
	t.Fatalf("%s: %s failed: %v\n%s", b.pos, b.kind, err, out)
}
