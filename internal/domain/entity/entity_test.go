package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateScan(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
	}{
		{"time", time.Date(2024, 3, 5, 23, 30, 0, 0, time.FixedZone("CET", 3600))},
		{"bytes", []byte("2024-03-05")},
		{"string", "2024-03-05"},
		{"datetime text", "2024-03-05 00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.in); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if d.String() != "2024-03-05" {
				t.Errorf("got %s", d)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("expected an error for an integer")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2023, time.December, 31)
	body, err := json.Marshal(struct {
		D Date  `json:"d"`
		P *Date `json:"p"`
	}{D: d})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"d":"2023-12-31","p":null}` {
		t.Errorf("unexpected json %s", body)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2023-12-31"`), &back); err != nil || !back.Equal(d.Time) {
		t.Errorf("round trip failed: %v %v", back, err)
	}
}

func TestFlag(t *testing.T) {
	inputs := map[interface{}]Flag{
		int64(1): FlagSet,
		int64(0): FlagUnset,
		true:     FlagSet,
		"1":      FlagSet,
		"0":      FlagUnset,
		nil:      FlagUnset,
	}
	for in, want := range inputs {
		var f Flag
		if err := f.Scan(in); err != nil {
			t.Fatalf("Scan(%v): %v", in, err)
		}
		if f != want {
			t.Errorf("Scan(%v) = %v, want %v", in, f, want)
		}
	}

	var f Flag
	if err := f.Scan([]byte("1")); err != nil || f != FlagSet {
		t.Errorf("Scan([]byte) = %v, %v", f, err)
	}

	v, err := FlagSet.Value()
	if err != nil || v != int64(1) {
		t.Errorf("Value = %v, %v", v, err)
	}

	body, _ := json.Marshal(Patient{ID: 1, BaselineCompleted: FlagSet})
	want := `{"idPatient":1,"stammdatenAusgefüllt":1,"expositionAusgefüllt":0,"followUpAusgefüllt":0}`
	if string(body) != want {
		t.Errorf("got %s", body)
	}
}

func TestFollowUpHadInfarction(t *testing.T) {
	yes, no := AnswerYes, AnswerNo
	if (&FollowUpRecord{}).HadInfarction() {
		t.Error("nil answer is not an infarction")
	}
	if (&FollowUpRecord{Infarction: &no}).HadInfarction() {
		t.Error("nein is not an infarction")
	}
	if !(&FollowUpRecord{Infarction: &yes}).HadInfarction() {
		t.Error("ja is an infarction")
	}
}
