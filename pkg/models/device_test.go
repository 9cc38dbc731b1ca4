package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseDeviceType(t *testing.T) {
	tests := []struct {
		in     string
		want   DeviceType
		wantOK bool
	}{
		{"Laptop", DeviceTypeLaptop, true},
		{"ap", DeviceTypeAP, true},
		{"  SWITCH ", DeviceTypeSwitch, true},
		{"Phone", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDeviceType(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseDeviceType(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseDeviceStatus(t *testing.T) {
	got, ok := ParseDeviceStatus("retired")
	if !ok || got != DeviceStatusRetired {
		t.Errorf("ParseDeviceStatus(retired) = %q, %v", got, ok)
	}
	if _, ok := ParseDeviceStatus("Unknown"); ok {
		t.Error("ParseDeviceStatus(Unknown) should fail")
	}
}

func TestFieldsMatchFieldNames(t *testing.T) {
	d := Device{DeviceID: "DEV-0001", Name: "core-sw", DeviceType: DeviceTypeSwitch}
	if len(d.Fields()) != len(FieldNames()) {
		t.Fatalf("Fields() has %d values, FieldNames() has %d", len(d.Fields()), len(FieldNames()))
	}
	if got := strings.Join(FieldNames(), ","); got != "device_id,name,device_type,ip,location,owner,status,notes,created_at" {
		t.Errorf("FieldNames() = %s", got)
	}
}

func TestHaystack_IncludesEveryTextField(t *testing.T) {
	d := Device{
		DeviceID: "DEV-0007", Name: "Edge-RTR", DeviceType: DeviceTypeRouter,
		IP: "10.0.0.1", Location: "Seattle Branch", Owner: "NetOps",
		Status: DeviceStatusActive, Notes: "BGP uplink",
	}
	h := d.Haystack()
	for _, want := range []string{"dev-0007", "edge-rtr", "router", "10.0.0.1", "seattle branch", "netops", "active", "bgp uplink"} {
		if !strings.Contains(h, want) {
			t.Errorf("Haystack() missing %q: %s", want, h)
		}
	}
}

func TestDeviceUnmarshalJSON(t *testing.T) {
	valid := `{"device_id":"DEV-0001","name":"web-01","device_type":"Server","ip":"10.0.0.5",
		"location":"HQ","owner":"ops","status":"Active","notes":"","created_at":"2026-01-02T03:04:05"}`

	var d Device
	if err := json.Unmarshal([]byte(valid), &d); err != nil {
		t.Fatalf("Unmarshal valid: %v", err)
	}
	if d.DeviceType != DeviceTypeServer || d.Status != DeviceStatusActive {
		t.Errorf("decoded type/status = %q/%q", d.DeviceType, d.Status)
	}

	bad := map[string]string{
		"missing field":  `{"device_id":"DEV-0001"}`,
		"unknown key":    strings.Replace(valid, `"notes":""`, `"notes":"","extra":1`, 1),
		"unknown status": strings.Replace(valid, `"Active"`, `"Broken"`, 1),
		"unknown type":   strings.Replace(valid, `"Server"`, `"Toaster"`, 1),
		"wrong type":     strings.Replace(valid, `"name":"web-01"`, `"name":7`, 1),
	}
	for name, doc := range bad {
		t.Run(name, func(t *testing.T) {
			var d Device
			if err := json.Unmarshal([]byte(doc), &d); err == nil {
				t.Errorf("expected error for %s", name)
			}
		})
	}
}
