package cgra

import "testing"

func TestKernelDescriptorPackRoundTrip(t *testing.T) {
	k := KernelDescriptor{SRFSPMAddr: 9, ColumnUsage: 3, IMEMStart: 200, NumInstr: 40}
	got := UnpackKernelDescriptor(k.Pack())
	if got != k {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, k)
	}
}

func TestKernelDescriptorColumns(t *testing.T) {
	cases := []struct {
		usage            int
		start, end       int
		wantErr          bool
	}{
		{1, 0, 0, false},
		{2, 1, 1, false},
		{3, 0, Columns - 1, false},
		{0, 0, 0, true},
	}
	for _, c := range cases {
		k := KernelDescriptor{ColumnUsage: c.usage}
		start, end, err := k.Columns()
		if c.wantErr {
			if err == nil {
				t.Errorf("usage=%d: expected error", c.usage)
			}
			continue
		}
		if err != nil {
			t.Errorf("usage=%d: unexpected error %v", c.usage, err)
		}
		if start != c.start || end != c.end {
			t.Errorf("usage=%d: got (%d,%d), want (%d,%d)", c.usage, start, end, c.start, c.end)
		}
	}
}

func TestKMEMAddAndGetKernel(t *testing.T) {
	m := NewKMEM()
	desc := KernelDescriptor{SRFSPMAddr: 1, ColumnUsage: 1, IMEMStart: 0, NumInstr: 4}
	if err := m.AddKernel(1, desc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := m.Get(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != desc {
		t.Errorf("got %+v, want %+v", got, desc)
	}
}

func TestKMEMRejectsReservedSlotZero(t *testing.T) {
	m := NewKMEM()
	if err := m.AddKernel(0, KernelDescriptor{NumInstr: 1}); err == nil {
		t.Error("expected error adding kernel at reserved slot 0")
	}
}

func TestKMEMRejectsOutOfRangeInstrCount(t *testing.T) {
	m := NewKMEM()
	if err := m.AddKernel(1, KernelDescriptor{NumInstr: 0}); err == nil {
		t.Error("expected error for NumInstr=0")
	}
	if err := m.AddKernel(1, KernelDescriptor{NumInstr: 65}); err == nil {
		t.Error("expected error for NumInstr=65")
	}
}

func TestKMEMGetUnconfiguredSlotErrors(t *testing.T) {
	m := NewKMEM()
	if _, err := m.Get(3); err == nil {
		t.Error("expected error reading unconfigured slot")
	}
}
