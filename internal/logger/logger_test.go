package logger

import "testing"

func TestDeferredLogCollectsMessages(t *testing.T) {
	log := NewDeferredLog()
	log.Add(Warning, "tsconfig.json has no paths")
	log.Add(Error, "package.json is malformed")

	if len(log.Msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(log.Msgs))
	}
	if !log.HasErrors() {
		t.Errorf("expected HasErrors to be true")
	}
	if log.Msgs[0].Kind != Warning || log.Msgs[0].Text != "tsconfig.json has no paths" {
		t.Errorf("unexpected first message: %+v", log.Msgs[0])
	}
}

func TestDiscardLogIsSafeToUse(t *testing.T) {
	Discard.Add(Error, "ignored")
	Discard.AddMsg(Msg{Kind: Debug, Text: "ignored"})
}
