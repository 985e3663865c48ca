package fetch

// Source describes one hospital's published machine-readable file.
type Source struct {
	// Key is the short identifier used by the --only flag.
	Key string
	// Hospital is the display name of the facility.
	Hospital string
	// URL is the public download location. Some hospitals sit behind
	// WAF/Cloudflare protection and may reject non-browser clients.
	URL string
	// Filename is the name the file is saved under in the input directory.
	Filename string
}

// Sources lists the Bellingham-to-Seattle corridor hospitals this project
// benchmarks. PeaceHealth publishes Craneware ZIPs containing wide-format
// CSVs; Providence, Swedish, and UW Medicine publish CMS-schema JSON; the
// rest publish CSV.
var Sources = []Source{
	{
		Key:      "peacehealth",
		Hospital: "PeaceHealth St Joseph Medical Center",
		URL:      "https://apim.services.craneware.com/api-pricing-transparency/api/public/c2b5051ecb723f5355be61d1a3eb6c28/charges/mrf",
		Filename: "peacehealth_st_joseph_mrf.zip",
	},
	{
		Key:      "peacehealth_united_general",
		Hospital: "PeaceHealth United General Hospital",
		URL:      "https://apim.services.craneware.com/api-pricing-transparency/api/public/51492878d96ce15d3ad32eec16ccc830/charges/mrf",
		Filename: "peacehealth_united_general_mrf.zip",
	},
	{
		Key:      "providence_everett",
		Hospital: "Providence Regional Medical Center Everett",
		URL:      "https://pricetransparency.providence.org/wamt/live/352346161_providence-regional-medical-center-everett_standardcharges.json",
		Filename: "providence_everett_standardcharges.json",
	},
	{
		Key:      "swedish_seattle",
		Hospital: "Swedish Medical Center (Seattle / First Hill)",
		URL:      "https://pricetransparency.providence.org/swedish/live/910433740_swedish-medical-center_standardcharges.json",
		Filename: "910433740_swedish-medical-center_standardcharges.json",
	},
	{
		Key:      "swedish_cherry_hill",
		Hospital: "Swedish Medical Center Cherry Hill",
		URL:      "https://pricetransparency.providence.org/swedish/live/910373400_swedish-medical-center-cherry-hill_standardcharges.json",
		Filename: "910373400_swedish-medical-center-cherry-hill_standardcharges.json",
	},
	{
		Key:      "swedish_edmonds",
		Hospital: "Swedish Edmonds",
		URL:      "https://pricetransparency.providence.org/swedish/live/272305304_swedish-edmonds-hospital_standardcharges.json",
		Filename: "swedish_edmonds_standardcharges.json",
	},
	{
		Key:      "swedish_issaquah",
		Hospital: "Swedish Medical Center Issaquah",
		URL:      "https://pricetransparency.providence.org/swedish/live/910433740_swedish-medical-center-issaquah_standardcharges.json",
		Filename: "910433740_swedish-medical-center-issaquah_standardcharges.json",
	},
	{
		Key:      "uw_medical_center",
		Hospital: "UW Medical Center",
		URL:      "https://www.uwmedicine.org/sites/stevie/files/mrf/916001537_university-of-washington-medical-center_standardcharges.json",
		Filename: "uw_medical_center_standardcharges.json",
	},
	{
		Key:      "harborview",
		Hospital: "Harborview Medical Center",
		URL:      "https://www.uwmedicine.org/sites/stevie/files/mrf/911631806_harborview-medical-center_standardcharges.json",
		Filename: "harborview_standardcharges.json",
	},
	{
		Key:      "skagit_valley",
		Hospital: "Skagit Valley Hospital",
		URL:      "https://www.skagitregionalhealth.org/docs/default-source/finance-and-billing/chargemasters/562392010_skagit-valley-hospital_standardcharges.csv",
		Filename: "skagit_valley_standardcharges.csv",
	},
	{
		Key:      "cascade_valley",
		Hospital: "Cascade Valley Hospital",
		URL:      "https://www.skagitregionalhealth.org/docs/default-source/finance-and-billing/chargemasters/562392010_cascade-valley-hospital_standardcharges.csv",
		Filename: "cascade_valley_standardcharges.csv",
	},
	{
		Key:      "overlake",
		Hospital: "Overlake Medical Center",
		URL:      "https://hospitalpricedisclosure.com/Download.aspx?pxi=jFpZaWS9NVsNmAQiukfKew*-*&f=iFd*_*cEPwhQHJy3lVvHy9uQ*-*",
		Filename: "overlake_standardcharges.csv",
	},
	{
		Key:      "evergreenhealth",
		Hospital: "EvergreenHealth Medical Center",
		URL:      "https://stmlevergreenncus001.blob.core.windows.net/public/910844563_KING-COUNTY-PUBLIC-HOSPITAL-DISTRICT-NO2_standardcharges.csv",
		Filename: "evergreenhealth_standardcharges.csv",
	},
}

// FindSource returns the source with the given key, or nil.
func FindSource(key string) *Source {
	for i := range Sources {
		if Sources[i].Key == key {
			return &Sources[i]
		}
	}
	return nil
}

// SourceKeys returns all known keys in declaration order.
func SourceKeys() []string {
	keys := make([]string, 0, len(Sources))
	for _, s := range Sources {
		keys = append(keys, s.Key)
	}
	return keys
}
