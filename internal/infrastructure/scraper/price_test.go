package scraper

import "testing"

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  float64
		found bool
	}{
		{name: "dot separator", text: "Akumulatora urbis 20.59 €", want: 20.59, found: true},
		{name: "comma separator", text: "Cena: 1299,00 € ar PVN", want: 1299.00, found: true},
		{name: "no space before euro", text: "89.99€", want: 89.99, found: true},
		{name: "first of several prices wins", text: "20.59 € was 25.99 €", want: 20.59, found: true},
		{name: "integer price without decimals is ignored", text: "5 €", found: false},
		{name: "no price", text: "Pievienot grozam", found: false},
		{name: "empty text", text: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractPrice(tt.text)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("price = %v, want %v", got, tt.want)
			}
		})
	}
}
