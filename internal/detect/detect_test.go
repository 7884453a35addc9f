package detect

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	// #nosec G306 -- test fixtures are not sensitive.
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestDetectNextTypescript(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
  "dependencies": {"next": "^14.0.0", "react": "^18.0.0"},
  "devDependencies": {"typescript": "^5.0.0"}
}`)
	writeFile(t, dir, "pnpm-lock.yaml", "lockfileVersion: 6")

	project, err := Detect(dir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if project.Framework != FrameworkNext {
		t.Errorf("Expected next, got: %s", project.Framework)
	}
	if project.Language != LangTypeScript {
		t.Errorf("Expected typescript, got: %s", project.Language)
	}
	if project.PackageManager != ManagerPnpm {
		t.Errorf("Expected pnpm, got: %s", project.PackageManager)
	}
}

func TestDetectExpressJavascript(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"express": "^4.18.0"}}`)

	project, err := Detect(dir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if project.Framework != FrameworkExpress {
		t.Errorf("Expected express, got: %s", project.Framework)
	}
	if project.Language != LangJavaScript {
		t.Errorf("Expected javascript, got: %s", project.Language)
	}
	if project.PackageManager != ManagerNpm {
		t.Errorf("Expected npm fallback, got: %s", project.PackageManager)
	}
}

func TestDetectTypescriptViaTsconfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"react": "*"}}`)
	writeFile(t, dir, "tsconfig.json", `{}`)

	project, err := Detect(dir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if project.Language != LangTypeScript {
		t.Errorf("Expected typescript via tsconfig.json, got: %s", project.Language)
	}
	if project.Framework != FrameworkReact {
		t.Errorf("Expected react, got: %s", project.Framework)
	}
}

func TestDetectPythonFastAPI(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", "fastapi==0.110.0\nuvicorn[standard]>=0.27\n")

	project, err := Detect(dir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if project.Language != LangPython {
		t.Errorf("Expected python, got: %s", project.Language)
	}
	if project.Framework != FrameworkFastAPI {
		t.Errorf("Expected fastapi, got: %s", project.Framework)
	}
	if project.PackageManager != ManagerPip {
		t.Errorf("Expected pip, got: %s", project.PackageManager)
	}
}

func TestDetectPythonPoetry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", "[tool.poetry]\nname = \"app\"\n")
	writeFile(t, dir, "poetry.lock", "")

	project, err := Detect(dir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if project.PackageManager != ManagerPoetry {
		t.Errorf("Expected poetry, got: %s", project.PackageManager)
	}
}

func TestDetectGo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/app\n\ngo 1.23\n")

	project, err := Detect(dir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if project.Language != LangGo || project.Framework != FrameworkGo {
		t.Errorf("Expected go/go, got: %s/%s", project.Language, project.Framework)
	}
}

func TestDetectUnknown(t *testing.T) {
	project, err := Detect(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if project.Framework != FrameworkUnknown {
		t.Errorf("Expected unknown, got: %s", project.Framework)
	}
}

func TestDetectMalformedPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{not json")

	if _, err := Detect(dir); err == nil {
		t.Error("Expected an error for malformed package.json")
	}
}

func TestContainsPackage(t *testing.T) {
	reqs := "Django>=4.2\n# comment\nflask-cors==4.0\n"
	if !containsPackage(reqs, "django") {
		t.Error("Expected django to match case-insensitively")
	}
	if containsPackage(reqs, "flask") {
		t.Error("Expected flask-cors not to match flask")
	}
}
