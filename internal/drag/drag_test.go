package drag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingSource records the payload it attached and the end hook.
type recordingSource struct {
	payload string
	started int
	ended   int
}

func (s *recordingSource) DragStart(e *Event) {
	s.started++
	if e.Transfer != nil {
		e.Transfer.SetData(FormatText, s.payload)
		e.Transfer.SetEffect(EffectMove)
	}
}

func (s *recordingSource) DragEnd(_ *Event) {
	s.ended++
}

// recordingTarget accepts text payloads and records protocol calls.
type recordingTarget struct {
	acceptText bool
	overs      int
	leaves     int
	dropped    []string
}

func (t *recordingTarget) DragOver(e *Event) {
	t.overs++
	if t.acceptText && e.Transfer != nil && e.Transfer.Data(FormatText) != "" {
		e.PreventDefault()
	}
}

func (t *recordingTarget) DragLeave(_ *Event) {
	t.leaves++
}

func (t *recordingTarget) Drop(e *Event) {
	t.dropped = append(t.dropped, e.Transfer.Data(FormatText))
}

func TestTransfer_ExactFormatMatch(t *testing.T) {
	tr := NewTransfer()
	tr.SetData(FormatText, "abc")

	require.Equal(t, "abc", tr.Data(FormatText))
	require.Equal(t, "", tr.Data("Files"))
	require.Equal(t, "", tr.Data("text/PLAIN"))
	require.Equal(t, FormatText, tr.Format())
}

func TestTransfer_SetDataReplaces(t *testing.T) {
	tr := NewTransfer()
	tr.SetData(FormatText, "first")
	tr.SetData("Files", "/tmp/x")

	require.Equal(t, "", tr.Data(FormatText))
	require.Equal(t, "/tmp/x", tr.Data("Files"))
}

func TestTransfer_Effect(t *testing.T) {
	tr := NewTransfer()
	require.Equal(t, EffectNone, tr.Effect())

	tr.SetEffect(EffectMove)
	require.Equal(t, EffectMove, tr.Effect())
}

func TestEvent_PreventDefault(t *testing.T) {
	e := &Event{}
	require.False(t, e.DefaultPrevented())

	e.PreventDefault()
	require.True(t, e.DefaultPrevented())
}

func TestGesture_StartAttachesPayload(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}
	tr := NewTransfer()

	g.Start(src, tr, 1, 1)

	require.Equal(t, StateDragging, g.State())
	require.True(t, g.Dragging())
	require.Equal(t, 1, src.started)
	require.Equal(t, "p1", g.Transfer().Data(FormatText))
}

func TestGesture_StartWithoutTransferIsNoOp(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}

	g.Start(src, nil, 1, 1)

	require.Equal(t, StateIdle, g.State())
	require.Zero(t, src.started)
}

func TestGesture_StartWhileDraggingIsNoOp(t *testing.T) {
	g := NewGesture()
	first := &recordingSource{payload: "p1"}
	second := &recordingSource{payload: "p2"}

	g.Start(first, NewTransfer(), 0, 0)
	g.Start(second, NewTransfer(), 0, 0)

	require.Zero(t, second.started)
	require.Equal(t, "p1", g.Transfer().Data(FormatText))
}

func TestGesture_MoveToEntersHovering(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}
	tgt := &recordingTarget{acceptText: true}

	g.Start(src, NewTransfer(), 0, 0)
	g.MoveTo(tgt, 2, 2)

	require.Equal(t, StateHovering, g.State())
	require.Equal(t, 1, tgt.overs)
}

func TestGesture_MoveWithinTargetReEmitsOver(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}
	tgt := &recordingTarget{acceptText: true}

	g.Start(src, NewTransfer(), 0, 0)
	g.MoveTo(tgt, 2, 2)
	g.MoveTo(tgt, 3, 3)
	g.MoveTo(tgt, 4, 4)

	require.Equal(t, 3, tgt.overs)
	require.Zero(t, tgt.leaves)
}

func TestGesture_CrossingBoundaryEmitsLeaveThenOver(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}
	a := &recordingTarget{acceptText: true}
	b := &recordingTarget{acceptText: true}

	g.Start(src, NewTransfer(), 0, 0)
	g.MoveTo(a, 1, 1)
	g.MoveTo(b, 9, 9)

	require.Equal(t, 1, a.leaves)
	require.Equal(t, 1, b.overs)
	require.Equal(t, StateHovering, g.State())
}

func TestGesture_LeavingAllTargetsReturnsToDragging(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}
	tgt := &recordingTarget{acceptText: true}

	g.Start(src, NewTransfer(), 0, 0)
	g.MoveTo(tgt, 1, 1)
	g.MoveTo(nil, 9, 9)

	require.Equal(t, 1, tgt.leaves)
	require.Equal(t, StateDragging, g.State())
}

func TestGesture_DropOnAcceptingTarget(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}
	tgt := &recordingTarget{acceptText: true}

	g.Start(src, NewTransfer(), 0, 0)
	g.MoveTo(tgt, 1, 1)
	g.Drop(1, 1)

	require.Equal(t, []string{"p1"}, tgt.dropped)
	require.Equal(t, 1, src.ended)
	require.Equal(t, StateIdle, g.State())
	require.Nil(t, g.Transfer())
}

func TestGesture_DropOnRejectingTargetCancels(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}
	tgt := &recordingTarget{acceptText: false}

	g.Start(src, NewTransfer(), 0, 0)
	g.MoveTo(tgt, 1, 1)
	g.Drop(1, 1)

	require.Empty(t, tgt.dropped)
	require.Equal(t, 1, tgt.leaves)
	require.Equal(t, 1, src.ended)
	require.Equal(t, StateIdle, g.State())
}

func TestGesture_DropWithNoTarget(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}

	g.Start(src, NewTransfer(), 0, 0)
	g.Drop(9, 9)

	require.Equal(t, 1, src.ended)
	require.Equal(t, StateIdle, g.State())
}

func TestGesture_DropWhileIdleIsNoOp(t *testing.T) {
	g := NewGesture()

	g.Drop(0, 0)

	require.Equal(t, StateIdle, g.State())
}

func TestGesture_HoverReEvaluatesAcceptance(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}
	tgt := &recordingTarget{acceptText: true}

	g.Start(src, NewTransfer(), 0, 0)
	g.MoveTo(tgt, 1, 1)

	// Target stops accepting mid-hover; the next over re-evaluates
	tgt.acceptText = false
	g.MoveTo(tgt, 2, 2)
	g.Drop(2, 2)

	require.Empty(t, tgt.dropped)
	require.Equal(t, 1, src.ended)
}

func TestGesture_Cancel(t *testing.T) {
	g := NewGesture()
	src := &recordingSource{payload: "p1"}
	tgt := &recordingTarget{acceptText: true}

	g.Start(src, NewTransfer(), 0, 0)
	g.MoveTo(tgt, 1, 1)
	g.Cancel()

	require.Empty(t, tgt.dropped)
	require.Equal(t, 1, tgt.leaves)
	require.Equal(t, 1, src.ended)
	require.Equal(t, StateIdle, g.State())
}

func TestGesture_CancelWhileIdleIsNoOp(t *testing.T) {
	g := NewGesture()

	g.Cancel()

	require.Equal(t, StateIdle, g.State())
}

func TestGesture_RejectsForeignFormat(t *testing.T) {
	g := NewGesture()
	tgt := &recordingTarget{acceptText: true}

	g.Start(fileSource{}, NewTransfer(), 0, 0)
	g.MoveTo(tgt, 1, 1)
	g.Drop(1, 1)

	require.Empty(t, tgt.dropped)
	require.Equal(t, StateIdle, g.State())
}

// fileSource simulates a drag whose payload is not in the text format.
type fileSource struct{}

func (s fileSource) DragStart(e *Event) {
	e.Transfer.SetData("Files", "/tmp/report.pdf")
}

func (s fileSource) DragEnd(_ *Event) {}
