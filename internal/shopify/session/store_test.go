package session

import "testing"

func TestSanitizeShop(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"demo.myshopify.com", "demo.myshopify.com"},
		{"https://Demo.MyShopify.com", "demo.myshopify.com"},
		{"http://demo.myshopify.com/", "demo.myshopify.com"},
		{"  demo.myshopify.com ", "demo.myshopify.com"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeShop(tc.in); got != tc.want {
			t.Fatalf("SanitizeShop(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestKey(t *testing.T) {
	if got := Key("demo.myshopify.com"); got != "offline_demo.myshopify.com" {
		t.Fatalf("Key = %q", got)
	}
}
