package flagx

import (
	"reflect"
	"testing"
)

func TestFilterArgs(t *testing.T) {
	allowed := []string{"-a", "-d", "--config"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "separate values",
			args: []string{"-a", ":8080", "-x", "junk", "-d", "dsn"},
			want: []string{"-a", ":8080", "-d", "dsn"},
		},
		{
			name: "equals form",
			args: []string{"--config=conf.json", "--other=1"},
			want: []string{"--config=conf.json"},
		},
		{
			name: "flag followed by another flag keeps no value",
			args: []string{"-a", "-d", "dsn"},
			want: []string{"-a", "-d", "dsn"},
		},
		{
			name: "nothing allowed",
			args: []string{"-z", "1"},
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, allowed)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("FilterArgs(%v) = %v, want %v", tc.args, got, tc.want)
			}
		})
	}
}
