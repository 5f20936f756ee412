package canvas2d

import "testing"

func TestSaveRestore(t *testing.T) {
	dc := NewContext(10, 10)
	dc.SetLineWidth(1)
	dc.Save()
	dc.SetLineWidth(7)
	dc.Translate(5, 5)
	dc.Restore()

	if dc.LineWidth() != 1 {
		t.Errorf("line width after restore = %g, want 1", dc.LineWidth())
	}
	if !dc.GetTransform().IsIdentity() {
		t.Error("transform not restored")
	}
}

func TestRestoreOnEmptyStack(t *testing.T) {
	dc := NewContext(10, 10)
	dc.Restore()
	dc.Restore()
	if !dc.GetTransform().IsIdentity() {
		t.Error("spurious restore corrupted state")
	}
}

func TestScopeUnwindsNestedSaves(t *testing.T) {
	dc := NewContext(10, 10)
	dc.SetLineWidth(1)

	scope := dc.Scope()
	dc.SetLineWidth(3)
	dc.Save()
	dc.SetLineWidth(5)
	dc.Save()
	dc.SetLineWidth(9)
	// Inner saves never restored; the scope unwinds them all.
	scope.Restore()

	if dc.LineWidth() != 1 {
		t.Errorf("line width after scope restore = %g, want 1", dc.LineWidth())
	}
}

func TestScopeRestoreIsIdempotent(t *testing.T) {
	dc := NewContext(10, 10)
	dc.Save()
	dc.SetLineWidth(2)

	scope := dc.Scope()
	dc.SetLineWidth(8)
	scope.Restore()
	scope.Restore()

	if dc.LineWidth() != 2 {
		t.Errorf("double restore unwound too far: line width = %g, want 2", dc.LineWidth())
	}
}

func TestClipRestoredBySave(t *testing.T) {
	dc := NewContext(20, 20)
	dc.Save()
	dc.DrawRectangle(0, 0, 5, 5)
	dc.Clip()
	dc.Restore()

	// Clip no longer applies after restore.
	dc.SetFillColor(Black)
	dc.DrawRectangle(0, 0, 20, 20)
	dc.Fill()
	if px := dc.Pixmap().GetPixel(15, 15); px.A == 0 {
		t.Error("restored context still clipped")
	}
}
