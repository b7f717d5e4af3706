package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestE2E_RunCampaign(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e in short mode")
	}

	// 1. Build Binary
	rootDir, _ := filepath.Abs("../../")
	binPath := filepath.Join(rootDir, "autoearn_e2e")

	buildCmd := exec.Command("go", "build", "-o", binPath, "github.com/autoearnpro/autoearnpro/cmd/autoearn")
	buildCmd.Dir = rootDir
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build autoearn: %v\n%s", err, out)
	}
	defer os.Remove(binPath)

	// 2. Setup Env. HOME is overridden so the run uses a fresh DB under tmpDir.
	tmpDir := t.TempDir()

	missionPath := filepath.Join(tmpDir, "mission.yaml")
	missionContent := "objective: E2E smoke campaign\ntarget_earnings: 0\ncycles: 2\nengines: [captcha_breaker, market_oracle]\nconstraints: [e2e]"
	if err := os.WriteFile(missionPath, []byte(missionContent), 0600); err != nil {
		t.Fatalf("Failed to write mission: %v", err)
	}

	// 3. Run a short campaign
	runCmd := exec.Command(binPath, "run", missionPath, "--seed", "42")
	runCmd.Env = append(os.Environ(), "HOME="+tmpDir)
	output, err := runCmd.CombinedOutput()

	outStr := string(output)
	t.Logf("Output:\n%s", outStr)

	if err != nil {
		t.Fatalf("autoearn failed: %v", err)
	}

	// 4. Validate Output
	if !strings.Contains(outStr, "Campaign complete") {
		t.Error("Expected campaign completion message")
	}

	// 5. Validate Persistence
	dbPath := filepath.Join(tmpDir, ".autoearnpro", "autoearnpro.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("autoearnpro.db not created")
	}

	// 6. Sessions are queryable through the CLI
	listCmd := exec.Command(binPath, "sessions", "list")
	listCmd.Env = append(os.Environ(), "HOME="+tmpDir)
	listOut, err := listCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("sessions list failed: %v\n%s", err, listOut)
	}
	if !strings.Contains(string(listOut), "completed") {
		t.Errorf("Expected a completed session, got:\n%s", listOut)
	}
}

func TestE2E_EnginesProbe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e in short mode")
	}

	rootDir, _ := filepath.Abs("../../")
	binPath := filepath.Join(rootDir, "autoearn_probe_e2e")

	buildCmd := exec.Command("go", "build", "-o", binPath, "github.com/autoearnpro/autoearnpro/cmd/autoearn")
	buildCmd.Dir = rootDir
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build autoearn: %v\n%s", err, out)
	}
	defer os.Remove(binPath)

	tmpDir := t.TempDir()
	probeCmd := exec.Command(binPath, "engines", "probe", "--seed", "7")
	probeCmd.Env = append(os.Environ(), "HOME="+tmpDir)
	output, err := probeCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("engines probe failed: %v\n%s", err, output)
	}

	outStr := string(output)
	for _, name := range []string{"cosmic_intelligence", "market_oracle", "captcha_breaker", "total"} {
		if !strings.Contains(outStr, name) {
			t.Errorf("Expected %q in probe output", name)
		}
	}
}
