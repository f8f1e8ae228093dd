package errors

import (
	"testing"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     uint16
		wantCode Code
	}{
		{"zero", "0", 0, ""},
		{"typical", "94", 94, ""},
		{"max", "65535", 65535, ""},

		{"just over", "65536", 0, ErrCodeCapacityOverflow},
		{"beyond uint64", "99999999999999999999999", 0, ErrCodeCapacityOverflow},
		{"negative", "-1", 0, ErrCodeInvalidInput},
		{"empty", "", 0, ErrCodeInvalidInput},
		{"letters", "12T", 0, ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits("size", tt.input)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ParseUnits(%q) error = %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("ParseUnits(%q) = %d, want %d", tt.input, got, tt.want)
				}
				return
			}
			if !Is(err, tt.wantCode) {
				t.Errorf("ParseUnits(%q) error = %v, want code %s", tt.input, err, tt.wantCode)
			}
		})
	}
}

func TestCheckUnits(t *testing.T) {
	if v, err := CheckUnits("used", 10); err != nil || v != 10 {
		t.Errorf("CheckUnits(10) = %d, %v", v, err)
	}
	if _, err := CheckUnits("used", MaxUnits+1); !Is(err, ErrCodeCapacityOverflow) {
		t.Errorf("CheckUnits(MaxUnits+1) error = %v, want overflow", err)
	}
}

func TestValidatePlanID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "7d444840-9dc0-11d1-b245-5ffdce74fad2", false},
		{"empty", "", true},
		{"path traversal", "../../etc/passwd", true},
		{"plain string", "plan-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlanID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlanID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPlanID) {
				t.Errorf("ValidatePlanID(%q) code = %s", tt.input, GetCode(err))
			}
		})
	}
}
