// Package inspector implements a small terminal UI for single-stepping
// a loaded kernel and watching register/VWR/SRF state change, built on
// the same tcell/tview panel-and-keybinding idiom as this author's
// interactive debuggers.
package inspector

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/vwr2a-cgra/internal/cgra"
)

// Inspector single-steps a configured, loaded kernel, redrawing its
// register/SRF panels after each cycle.
type Inspector struct {
	sim      *cgra.Simulator
	kernelID int

	app       *tview.Application
	regsView  *tview.TextView
	srfView   *tview.TextView
	statusBar *tview.TextView

	cycle int
	done  bool
}

func New(sim *cgra.Simulator, kernelID int) *Inspector {
	return &Inspector{sim: sim, kernelID: kernelID}
}

// Run builds the screen and blocks until the user quits (q) or the
// kernel exits and the user dismisses the final frame.
func (ins *Inspector) Run() error {
	ins.app = tview.NewApplication()

	ins.regsView = tview.NewTextView().SetDynamicColors(true)
	ins.regsView.SetBorder(true).SetTitle(" registers ")

	ins.srfView = tview.NewTextView().SetDynamicColors(true)
	ins.srfView.SetBorder(true).SetTitle(" SRF ")

	ins.statusBar = tview.NewTextView().SetDynamicColors(true)
	ins.statusBar.SetText("[s] step  [c] continue  [q] quit")

	top := tview.NewFlex().
		AddItem(ins.regsView, 0, 2, false).
		AddItem(ins.srfView, 0, 1, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 1, false).
		AddItem(ins.statusBar, 1, 0, false)

	ins.redraw()

	root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q':
			ins.app.Stop()
			return nil
		case 's':
			ins.step()
			ins.redraw()
			return nil
		case 'c':
			for !ins.done {
				ins.step()
			}
			ins.redraw()
			return nil
		}
		return event
	})

	return ins.app.SetRoot(root, true).Run()
}

// step advances the simulator by one cycle. The inspector does not
// reimplement the cycle loop; it reuses cgra.Simulator by running with
// a MaxCycles cutoff of cycle+1 against a throwaway context, which is
// adequate for interactive single-stepping of short kernels.
func (ins *Inspector) step() {
	if ins.done {
		return
	}
	ins.sim.MaxCycles = uint64(ins.cycle + 1)
	err := ins.sim.Run(context.Background(), ins.kernelID)
	ins.cycle++
	if err == nil {
		ins.done = true
	}
}

func (ins *Inspector) redraw() {
	var b strings.Builder
	for col := 0; col < cgra.Columns; col++ {
		fmt.Fprintf(&b, "col %d LCU regs: %v\n", col, ins.sim.CGRA.LCU[col].Regs)
		fmt.Fprintf(&b, "col %d LSU regs: %v\n", col, ins.sim.CGRA.LSU[col].Regs)
		fmt.Fprintf(&b, "col %d MXCU regs: %v\n", col, ins.sim.CGRA.MXCU[col].Regs)
	}
	ins.regsView.SetText(b.String())

	var s strings.Builder
	for col := 0; col < cgra.Columns; col++ {
		fmt.Fprintf(&s, "col %d: ", col)
		for i := 0; i < cgra.SRFRegs; i++ {
			fmt.Fprintf(&s, "%d ", ins.sim.CGRA.SRF[col].Get(i))
		}
		s.WriteString("\n")
	}
	ins.srfView.SetText(s.String())
}
