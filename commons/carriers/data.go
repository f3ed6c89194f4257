// SPDX-License-Identifier: GPL-3.0-only

package carriers

var countries = []Country{
	{Code: "NG", Name: "Nigeria", Flag: "🇳🇬", Currency: "NGN"},
	{Code: "KE", Name: "Kenya", Flag: "🇰🇪", Currency: "KES"},
	{Code: "UG", Name: "Uganda", Flag: "🇺🇬", Currency: "UGX"},
	{Code: "TZ", Name: "Tanzania", Flag: "🇹🇿", Currency: "TZS"},
	{Code: "SD", Name: "Sudan", Flag: "🇸🇩", Currency: "SDG"},
	{Code: "MA", Name: "Morocco", Flag: "🇲🇦", Currency: "MAD"},
	{Code: "ET", Name: "Ethiopia", Flag: "🇪🇹", Currency: "ETB"},
}

var providers = []NetworkProvider{
	{ID: "mtn-ng", DisplayName: "MTN Nigeria", CountryCode: "NG", Color: Yellow},
	{ID: "airtel-ng", DisplayName: "Airtel Nigeria", CountryCode: "NG", Color: Red},
	{ID: "glo-ng", DisplayName: "Glo Nigeria", CountryCode: "NG", Color: Green},
	{ID: "9mobile-ng", DisplayName: "9mobile Nigeria", CountryCode: "NG", Color: Emerald},

	{ID: "safaricom-ke", DisplayName: "Safaricom Kenya", CountryCode: "KE", Color: Green},
	{ID: "airtel-ke", DisplayName: "Airtel Kenya", CountryCode: "KE", Color: Red},
	{ID: "telkom-ke", DisplayName: "Telkom Kenya", CountryCode: "KE", Color: Blue},

	{ID: "mtn-ug", DisplayName: "MTN Uganda", CountryCode: "UG", Color: Yellow},
	{ID: "airtel-ug", DisplayName: "Airtel Uganda", CountryCode: "UG", Color: Red},
	{ID: "africell-ug", DisplayName: "Africell Uganda", CountryCode: "UG", Color: Purple},
	{ID: "utl-ug", DisplayName: "UTL Uganda", CountryCode: "UG", Color: Orange},

	{ID: "vodacom-tz", DisplayName: "Vodacom Tanzania", CountryCode: "TZ", Color: Red},
	{ID: "airtel-tz", DisplayName: "Airtel Tanzania", CountryCode: "TZ", Color: Red},
	{ID: "tigo-tz", DisplayName: "Tigo Tanzania", CountryCode: "TZ", Color: Blue},
	{ID: "halotel-tz", DisplayName: "Halotel Tanzania", CountryCode: "TZ", Color: Purple},

	{ID: "zain-sd", DisplayName: "Zain Sudan", CountryCode: "SD", Color: Purple},
	{ID: "mtn-sd", DisplayName: "MTN Sudan", CountryCode: "SD", Color: Yellow},
	{ID: "sudani-sd", DisplayName: "Sudani One", CountryCode: "SD", Color: Blue},

	{ID: "maroc-telecom-ma", DisplayName: "Maroc Telecom", CountryCode: "MA", Color: Red},
	{ID: "orange-ma", DisplayName: "Orange Morocco", CountryCode: "MA", Color: Orange},
	{ID: "inwi-ma", DisplayName: "inwi Morocco", CountryCode: "MA", Color: Green},

	{ID: "ethio-telecom-et", DisplayName: "Ethio Telecom", CountryCode: "ET", Color: Green},
	{ID: "safaricom-et", DisplayName: "Safaricom Ethiopia", CountryCode: "ET", Color: Green},
}

// Several ranges are listed under more than one provider (0701-0709, 0712-0719,
// 0772-0779, 09xx). The first rule in this slice wins.
var rules = []PrefixRule{
	{ProviderID: "mtn-ng", Prefixes: []string{"0803", "0806", "0813", "0816", "0903", "0906", "0913", "0916"}},
	{ProviderID: "airtel-ng", Prefixes: []string{"0802", "0808", "0812", "0901", "0902", "0907", "0912"}},
	{ProviderID: "glo-ng", Prefixes: []string{"0805", "0807", "0815", "0811", "0905", "0915"}},
	{ProviderID: "9mobile-ng", Prefixes: []string{"0809", "0817", "0818", "0908", "0909"}},

	{ProviderID: "safaricom-ke", Prefixes: []string{
		"0710", "0711", "0712", "0713", "0714", "0715", "0716", "0717", "0718", "0719",
		"0720", "0721", "0722", "0723", "0724", "0725", "0726", "0727", "0728", "0729",
		"0701", "0702", "0703", "0704", "0705", "0706", "0707", "0708", "0709",
	}},
	{ProviderID: "airtel-ke", Prefixes: []string{"0730", "0731", "0732", "0733", "0734", "0735", "0736", "0737", "0738", "0739"}},
	{ProviderID: "telkom-ke", Prefixes: []string{"0770", "0771", "0772", "0773", "0774", "0775", "0776", "0777", "0778", "0779"}},

	{ProviderID: "mtn-ug", Prefixes: []string{"0772", "0773", "0774", "0775", "0776", "0777", "0778", "0779"}},
	{ProviderID: "airtel-ug", Prefixes: []string{"0700", "0701", "0702", "0703", "0704", "0705", "0706", "0707", "0708", "0709"}},
	{ProviderID: "africell-ug", Prefixes: []string{"0790", "0791", "0792", "0793", "0794", "0795", "0796", "0797", "0798", "0799"}},
	{ProviderID: "utl-ug", Prefixes: []string{"0712", "0713", "0714", "0715", "0716", "0717", "0718", "0719"}},

	{ProviderID: "vodacom-tz", Prefixes: []string{"0754", "0755", "0756", "0757", "0758", "0759"}},
	{ProviderID: "airtel-tz", Prefixes: []string{"0784", "0785", "0786", "0787", "0788", "0789"}},
	{ProviderID: "tigo-tz", Prefixes: []string{"0771", "0772", "0773", "0774", "0775", "0776"}},
	{ProviderID: "halotel-tz", Prefixes: []string{"0621", "0622", "0623", "0624", "0625", "0626"}},

	{ProviderID: "zain-sd", Prefixes: []string{"0912", "0913", "0914", "0915", "0916", "0917"}},
	{ProviderID: "mtn-sd", Prefixes: []string{"0918", "0919", "0920", "0921", "0922", "0923"}},
	{ProviderID: "sudani-sd", Prefixes: []string{"0901", "0902", "0903", "0904", "0905", "0906"}},

	{ProviderID: "maroc-telecom-ma", Prefixes: []string{"0661", "0662", "0663", "0664", "0665", "0666"}},
	{ProviderID: "orange-ma", Prefixes: []string{"0698", "0699", "0600", "0601", "0602", "0603"}},
	{ProviderID: "inwi-ma", Prefixes: []string{"0650", "0651", "0652", "0653", "0654", "0655"}},

	{ProviderID: "ethio-telecom-et", Prefixes: []string{"0911", "0912", "0913", "0914", "0915", "0916"}},
	{ProviderID: "safaricom-et", Prefixes: []string{"0960", "0961", "0962", "0963", "0964", "0965"}},
}

// DefaultTable returns a copy of the built-in directory and prefix table.
func DefaultTable() Table {
	t := Table{
		Countries: append([]Country(nil), countries...),
		Providers: append([]NetworkProvider(nil), providers...),
		Rules:     make([]PrefixRule, len(rules)),
	}
	for i, r := range rules {
		t.Rules[i] = PrefixRule{ProviderID: r.ProviderID, Prefixes: append([]string(nil), r.Prefixes...)}
	}
	return t
}
