package feedback

import (
	"bytes"
	"reflect"
	"testing"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	if _, ok := r.Last(); ok {
		t.Error("empty recorder should have no last event")
	}

	r.Notify(Click)
	r.Notify(Success)

	if got := r.Events(); !reflect.DeepEqual(got, []Event{Click, Success}) {
		t.Errorf("Events() = %v", got)
	}
	if last, _ := r.Last(); last != Success {
		t.Errorf("Last() = %v, want success", last)
	}

	r.Reset()
	if len(r.Events()) != 0 {
		t.Error("Reset() should clear events")
	}
}

func TestMuteToggle(t *testing.T) {
	var r Recorder
	m := NewMute(&r, false)

	m.Notify(Click)
	if !m.Toggle() {
		t.Fatal("Toggle() should report muted")
	}
	m.Notify(Error)
	if m.Toggle() {
		t.Fatal("Toggle() should report unmuted")
	}
	m.Notify(Unlock)

	if got := r.Events(); !reflect.DeepEqual(got, []Event{Click, Unlock}) {
		t.Errorf("Events() = %v, want [click unlock]", got)
	}
}

func TestBell(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Click, ""},
		{Success, ""},
		{Error, "\a"},
		{Unlock, "\a"},
	}

	for _, tt := range tests {
		t.Run(string(tt.event), func(t *testing.T) {
			var buf bytes.Buffer
			NewBell(&buf).Notify(tt.event)
			if buf.String() != tt.want {
				t.Errorf("wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestMulti(t *testing.T) {
	var a, b Recorder
	Multi{&a, nil, &b}.Notify(Error)

	if len(a.Events()) != 1 || len(b.Events()) != 1 {
		t.Errorf("fan-out missed a notifier: a=%v b=%v", a.Events(), b.Events())
	}
}

func TestChannelDropsOldest(t *testing.T) {
	c := NewChannel(2)
	c.Notify(Click)
	c.Notify(Success)
	c.Notify(Unlock) // buffer full, click dropped

	got := []Event{<-c.Events(), <-c.Events()}
	if !reflect.DeepEqual(got, []Event{Success, Unlock}) {
		t.Errorf("received %v, want [success unlock]", got)
	}
}

func TestChannelClosed(t *testing.T) {
	c := NewChannel(4)
	c.Close()
	c.Close()
	c.Notify(Click)

	select {
	case e := <-c.Events():
		t.Errorf("closed channel delivered %v", e)
	default:
	}
}
