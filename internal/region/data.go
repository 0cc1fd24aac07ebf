package region

// Trimmed administrative-area dataset. IDs follow the national numbering
// scheme (province 2 digits, regency 4, district 6, village 10).

var provinces = []Province{
	{ID: 31, Name: "DKI Jakarta"},
	{ID: 32, Name: "Jawa Barat"},
	{ID: 33, Name: "Jawa Tengah"},
	{ID: 34, Name: "DI Yogyakarta"},
	{ID: 35, Name: "Jawa Timur"},
	{ID: 51, Name: "Bali"},
}

var regencies = []Regency{
	{ID: 3171, ProvinceID: 31, Name: "Kota Jakarta Selatan"},
	{ID: 3172, ProvinceID: 31, Name: "Kota Jakarta Timur"},
	{ID: 3173, ProvinceID: 31, Name: "Kota Jakarta Pusat"},
	{ID: 3273, ProvinceID: 32, Name: "Kota Bandung"},
	{ID: 3204, ProvinceID: 32, Name: "Kabupaten Bandung"},
	{ID: 3374, ProvinceID: 33, Name: "Kota Semarang"},
	{ID: 3471, ProvinceID: 34, Name: "Kota Yogyakarta"},
	{ID: 3404, ProvinceID: 34, Name: "Kabupaten Sleman"},
	{ID: 3578, ProvinceID: 35, Name: "Kota Surabaya"},
	{ID: 3573, ProvinceID: 35, Name: "Kota Malang"},
	{ID: 5171, ProvinceID: 51, Name: "Kota Denpasar"},
	{ID: 5103, ProvinceID: 51, Name: "Kabupaten Badung"},
}

var districts = []District{
	{ID: 317101, RegencyID: 3171, Name: "Kebayoran Baru"},
	{ID: 317102, RegencyID: 3171, Name: "Setiabudi"},
	{ID: 327301, RegencyID: 3273, Name: "Coblong"},
	{ID: 327302, RegencyID: 3273, Name: "Sukajadi"},
	{ID: 347101, RegencyID: 3471, Name: "Gondokusuman"},
	{ID: 340401, RegencyID: 3404, Name: "Depok"},
	{ID: 357801, RegencyID: 3578, Name: "Gubeng"},
	{ID: 517101, RegencyID: 5171, Name: "Denpasar Selatan"},
	{ID: 510301, RegencyID: 5103, Name: "Kuta"},
}

var villages = []Village{
	{ID: 3171011001, DistrictID: 317101, Name: "Selong"},
	{ID: 3171011002, DistrictID: 317101, Name: "Gunung"},
	{ID: 3171021001, DistrictID: 317102, Name: "Karet"},
	{ID: 3273011001, DistrictID: 327301, Name: "Dago"},
	{ID: 3273011002, DistrictID: 327301, Name: "Lebakgede"},
	{ID: 3471011001, DistrictID: 347101, Name: "Demangan"},
	{ID: 3404011001, DistrictID: 340401, Name: "Caturtunggal"},
	{ID: 3578011001, DistrictID: 357801, Name: "Airlangga"},
	{ID: 5171011001, DistrictID: 517101, Name: "Sanur"},
	{ID: 5103011001, DistrictID: 510301, Name: "Legian"},
}
