package ui

import (
	"testing"
)

func TestSilentUI_UpdateStatus(t *testing.T) {
	ui := SilentUI{}
	// Should not panic
	ui.UpdateStatus("test status")
}

func TestSilentUI_UpdateCycle(t *testing.T) {
	ui := SilentUI{}
	// Should not panic
	ui.UpdateCycle(1)
	ui.UpdateCycle(100)
	ui.UpdateCycle(0)
}

func TestSilentUI_UpdateEarnings(t *testing.T) {
	ui := SilentUI{}
	// Should not panic
	ui.UpdateEarnings(0)
	ui.UpdateEarnings(1234.56)
}

func TestSilentUI_Log(t *testing.T) {
	ui := SilentUI{}
	// Should not panic
	ui.Log("test message")
	ui.Log("")
}

func TestSilentUI_ImplementsInterface(t *testing.T) {
	// Verify SilentUI implements UI interface
	var _ UI = SilentUI{}
	var _ UI = &SilentUI{}
}

// MockUI implements UI interface for testing
type MockUI struct {
	StatusUpdates   []string
	CycleUpdates    []int
	EarningsUpdates []float64
	LogMessages     []string
}

func (m *MockUI) UpdateStatus(status string) {
	m.StatusUpdates = append(m.StatusUpdates, status)
}

func (m *MockUI) UpdateCycle(cycle int) {
	m.CycleUpdates = append(m.CycleUpdates, cycle)
}

func (m *MockUI) UpdateEarnings(total float64) {
	m.EarningsUpdates = append(m.EarningsUpdates, total)
}

func (m *MockUI) Log(msg string) {
	m.LogMessages = append(m.LogMessages, msg)
}

func TestMockUI_UpdateStatus(t *testing.T) {
	ui := &MockUI{}

	ui.UpdateStatus("status1")
	ui.UpdateStatus("status2")

	if len(ui.StatusUpdates) != 2 {
		t.Errorf("expected 2 status updates, got %d", len(ui.StatusUpdates))
	}
	if ui.StatusUpdates[0] != "status1" {
		t.Errorf("expected 'status1', got %q", ui.StatusUpdates[0])
	}
	if ui.StatusUpdates[1] != "status2" {
		t.Errorf("expected 'status2', got %q", ui.StatusUpdates[1])
	}
}

func TestMockUI_UpdateCycle(t *testing.T) {
	ui := &MockUI{}

	ui.UpdateCycle(1)
	ui.UpdateCycle(2)
	ui.UpdateCycle(3)

	if len(ui.CycleUpdates) != 3 {
		t.Errorf("expected 3 cycle updates, got %d", len(ui.CycleUpdates))
	}
	for i, expected := range []int{1, 2, 3} {
		if ui.CycleUpdates[i] != expected {
			t.Errorf("expected cycle %d, got %d", expected, ui.CycleUpdates[i])
		}
	}
}

func TestMockUI_UpdateEarnings(t *testing.T) {
	ui := &MockUI{}

	ui.UpdateEarnings(100.5)
	ui.UpdateEarnings(250)

	if len(ui.EarningsUpdates) != 2 {
		t.Errorf("expected 2 earnings updates, got %d", len(ui.EarningsUpdates))
	}
	if ui.EarningsUpdates[0] != 100.5 {
		t.Errorf("expected 100.5, got %f", ui.EarningsUpdates[0])
	}
}

func TestMockUI_Log(t *testing.T) {
	ui := &MockUI{}

	ui.Log("message1")
	ui.Log("message2")

	if len(ui.LogMessages) != 2 {
		t.Errorf("expected 2 log messages, got %d", len(ui.LogMessages))
	}
	if ui.LogMessages[0] != "message1" {
		t.Errorf("expected 'message1', got %q", ui.LogMessages[0])
	}
}

func TestMockUI_ImplementsInterface(t *testing.T) {
	// Verify MockUI implements UI interface
	var _ UI = &MockUI{}
}

func TestUI_InterfaceMethods(t *testing.T) {
	// Test that the UI interface can be used polymorphically
	uis := []UI{
		SilentUI{},
		&MockUI{},
	}

	for _, ui := range uis {
		// These should all work without panic
		ui.UpdateStatus("test")
		ui.UpdateCycle(1)
		ui.UpdateEarnings(10)
		ui.Log("test")
	}
}
