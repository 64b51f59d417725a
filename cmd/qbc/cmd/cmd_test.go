package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempSource(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bas")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp source: %v", err)
	}
	return path
}

func TestLexFileValidSource(t *testing.T) {
	path := writeTempSource(t, "PRINT \"HELLO\"\n")
	if err := lexFile(nil, []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLexFileReportsLexErrors(t *testing.T) {
	path := writeTempSource(t, "PRINT \"unterminated")
	if err := lexFile(nil, []string{path}); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestParseFileValidSource(t *testing.T) {
	path := writeTempSource(t, "x% = 1\nPRINT x%\n")
	if err := parseFile(nil, []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseFileReportsParseErrors(t *testing.T) {
	path := writeTempSource(t, "IF THEN\n")
	if err := parseFile(nil, []string{path}); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestAnalyzeFileValidSource(t *testing.T) {
	path := writeTempSource(t, "x% = 1\nPRINT x%\n")
	if err := analyzeFile(nil, []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeFileReportsSemanticErrors(t *testing.T) {
	path := writeTempSource(t, `x% = "hello" + 1`+"\n")
	if err := analyzeFile(nil, []string{path}); err == nil {
		t.Fatal("expected a semantic error")
	}
}

func TestCompileScriptWritesOutputFile(t *testing.T) {
	path := writeTempSource(t, "PRINT \"HELLO\"\n")
	outPath := filepath.Join(filepath.Dir(path), "out.qbo")
	outputFile = outPath
	disassemble = false
	bundleRuntime = ""
	defer func() { outputFile = "" }()

	if err := compileScript(nil, []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected output file to be written: %v", err)
	}
}

func TestRunScriptExecutesSource(t *testing.T) {
	path := writeTempSource(t, "PRINT \"HELLO\"\n")
	if err := runScript(nil, []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
