// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package errors

import (
	"errors"
	"testing"
)

func TestError(t *testing.T) {
	err := New(KindStatus, "api error: 503 Service Unavailable")
	if err.Error() != "api error: 503 Service Unavailable" {
		t.Errorf("unexpected message %q", err.Error())
	}

	wrapped := Wrap(err, KindTransport, "fetch statistics")
	if wrapped.Error() != "fetch statistics: api error: 503 Service Unavailable" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}

	if Wrap(nil, KindDecode, "x") != nil {
		t.Error("wrapping nil should stay nil")
	}
}

func TestGetKind(t *testing.T) {
	err := New(KindDecode, "bad body")
	if GetKind(err) != KindDecode {
		t.Errorf("expected KindDecode, got %v", GetKind(err))
	}

	wrapped := Wrapf(err, KindTransport, "fetch %s", "/api/statistics")
	if GetKind(wrapped) != KindTransport {
		t.Errorf("expected KindTransport, got %v", GetKind(wrapped))
	}

	if GetKind(errors.New("plain")) != KindUnknown {
		t.Error("expected KindUnknown for stdlib errors")
	}
}

func TestAttributes(t *testing.T) {
	err := New(KindStatus, "api error")
	err = Attr(err, "endpoint", "/api/reset")
	err = Attr(err, "status", 500)

	wrapped := Attr(Wrap(err, KindInternal, "reset"), "action", "reset")
	attrs := GetAttributes(wrapped)
	if attrs["endpoint"] != "/api/reset" || attrs["status"] != 500 || attrs["action"] != "reset" {
		t.Errorf("missing attributes: %v", attrs)
	}
}

func TestAttr_WrapsPlainErrors(t *testing.T) {
	err := Attr(errors.New("boom"), "stream", "traffic")
	if GetKind(err) != KindInternal {
		t.Errorf("expected KindInternal, got %v", GetKind(err))
	}
	if GetAttributes(err)["stream"] != "traffic" {
		t.Error("attribute lost")
	}
}

func TestLogArgs(t *testing.T) {
	args := LogArgs(Attr(New(KindDecode, "x"), "endpoint", "/api/statistics"))
	if len(args) != 4 || args[0] != "kind" || args[1] != "decode" {
		t.Errorf("unexpected args %v", args)
	}
}
