package skyn

import (
	"testing"

	"house-tracker/utils"
)

const listingPage = `<html><body>
<div class="ognlist grid">
  <div class="ogn ogn-item">
    <h3 class="ogn_headline">Marknagilsvegur 50</h3>
    <div class="ogn_adress">Tórshavn</div>
    <div class="props">
      <div>160 m² <span class="prop-size icon"></span></div>
      <div>450 m² <span class="prop-ground icon"></span></div>
      <div>4 <span class="prop-bedrooms icon"></span></div>
      <div>2 <span class="prop-floors icon"></span></div>
      <div>1999 <span class="prop-buildyear icon"></span></div>
    </div>
    <div class="listprice">2.500.000</div>
    <div class="latestoffer">2.400.000</div>
    <div class="validto_box validto">01.01.2025</div>
    <div class="listprice_label">Prísur</div>
    <img src="/logo.png">
    <img src="/admin/public/getimage?id=5">
  </div>
  <div class="ogn">
    <h3 class="ogn_headline">Heygsvegur 12</h3>
  </div>
</div>
</body></html>`

func TestExtract(t *testing.T) {
	e := New(utils.NewLogger())

	raws := e.Extract(listingPage, "Sethus")
	if len(raws) != 2 {
		t.Fatalf("extracted %d records; want 2", len(raws))
	}

	got := raws[0]
	tests := []struct {
		field, got, want string
	}{
		{"Address", got.Address, "Marknagilsvegur 50"},
		{"City", got.City, "Tórshavn"},
		{"LivingArea", got.LivingArea, "160 m²"},
		{"LandArea", got.LandArea, "450 m²"},
		{"Rooms", got.Rooms, "4"},
		{"Floors", got.Floors, "2"},
		{"BuiltYear", got.BuiltYear, "1999"},
		{"Price", got.Price, "2.500.000"},
		{"LatestOffer", got.LatestOffer, "2.400.000"},
		{"ValidUntil", got.ValidUntil, "01.01.2025"},
		{"Category", got.Category, "Sethus"},
		{"ImageURL", got.ImageURL, "https://www.skyn.fo/admin/public/getimage?id=5"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q; want %q", tt.field, tt.got, tt.want)
		}
	}
}

func TestExtractSparseCard(t *testing.T) {
	e := New(utils.NewLogger())

	raws := e.Extract(listingPage, "Sethus")
	got := raws[1]

	if got.Address != "Heygsvegur 12" {
		t.Errorf("Address = %q; want %q", got.Address, "Heygsvegur 12")
	}
	if got.Price != "" || got.ImageURL != "" {
		t.Errorf("missing fields should stay empty, got %+v", got)
	}
}

func TestExactRuleDoesNotMatchSubstring(t *testing.T) {
	// "listprice_label" contains "listprice" but the rule requires a whole
	// class token, so the label text must not land in Price.
	e := New(utils.NewLogger())

	page := `<div class="ognlist"><div class="ogn">
	  <div class="listprice_label">Prísur</div>
	</div></div>`

	raws := e.Extract(page, "")
	if len(raws) != 1 {
		t.Fatalf("extracted %d records; want 1", len(raws))
	}
	if raws[0].Price != "" {
		t.Errorf("Price = %q; want empty", raws[0].Price)
	}
}

func TestExtractNoWrapper(t *testing.T) {
	e := New(utils.NewLogger())

	tests := []struct {
		name    string
		content string
	}{
		{"empty page", "<html><body></body></html>"},
		{"garbage", "%%% not markup"},
		{"cards outside wrapper", `<div class="ogn">stray</div>`},
	}

	for _, tt := range tests {
		if raws := e.Extract(tt.content, ""); len(raws) != 0 {
			t.Errorf("%s: extracted %d records; want 0", tt.name, len(raws))
		}
	}
}
