package component

import (
	"errors"
	"net/http"
	"testing"
)

type resultProps struct {
	Name string
}

func TestResultConstructors(t *testing.T) {
	ok := OK(resultProps{Name: "Ada"})
	if ok.GetProps().Name != "Ada" || ok.GetStatus() != 0 || ok.GetErr() != nil || ok.ShouldSkip() {
		t.Errorf("OK() = %+v", ok)
	}

	invalid := Invalid(resultProps{})
	if invalid.GetStatus() != http.StatusUnprocessableEntity {
		t.Errorf("Invalid().GetStatus() = %d, want 422", invalid.GetStatus())
	}

	boom := errors.New("boom")
	if got := Err(resultProps{}, boom).GetErr(); got != boom {
		t.Errorf("Err().GetErr() = %v, want %v", got, boom)
	}

	if !Skip[resultProps]().ShouldSkip() {
		t.Error("Skip().ShouldSkip() = false")
	}
	if got := Redirect[resultProps]("/profile").GetRedirect(); got != "/profile" {
		t.Errorf("Redirect().GetRedirect() = %q", got)
	}
}

func TestResultChaining(t *testing.T) {
	r := OK(resultProps{}).
		Flash(FlashSuccess, "Saved").
		Flash(FlashInfo, "Synced").
		Trigger("session:changed", map[string]any{"id": "u1"}).
		TriggerAfterSettle("list:refresh").
		PushURL("/members").
		Header("Cache-Control", "no-store").
		Status(http.StatusCreated)

	if len(r.GetFlashes()) != 2 || r.GetFlashes()[1].Message != "Synced" {
		t.Errorf("flashes = %+v", r.GetFlashes())
	}
	if r.GetTrigger() != "session:changed" || r.GetTriggerData()["id"] != "u1" {
		t.Errorf("trigger = %q %v", r.GetTrigger(), r.GetTriggerData())
	}
	if r.GetTriggerAfterSettle() != "list:refresh" {
		t.Errorf("after settle = %q", r.GetTriggerAfterSettle())
	}
	if r.GetHeaders()["HX-Push-Url"] != "/members" || r.GetHeaders()["Cache-Control"] != "no-store" {
		t.Errorf("headers = %v", r.GetHeaders())
	}
	if r.GetStatus() != http.StatusCreated {
		t.Errorf("status = %d", r.GetStatus())
	}
}

func TestResultHeadersNotShared(t *testing.T) {
	base := OK(resultProps{}).Header("A", "1")
	a := base.Header("B", "2")
	b := base.Header("C", "3")

	if _, ok := a.GetHeaders()["C"]; ok {
		t.Error("header set on one branch leaked into another")
	}
	if _, ok := b.GetHeaders()["B"]; ok {
		t.Error("header set on one branch leaked into another")
	}
	if len(base.GetHeaders()) != 1 {
		t.Errorf("base headers mutated: %v", base.GetHeaders())
	}
}
