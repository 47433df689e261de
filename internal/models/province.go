package models

// Province is a top-level administrative region. The zero value selects all.
type Province string

const (
	AllProvinces Province = ""
	Seoul        Province = "서울"
	Busan        Province = "부산"
	Daegu        Province = "대구"
	Incheon      Province = "인천"
	Gwangju      Province = "광주"
	Daejeon      Province = "대전"
	Ulsan        Province = "울산"
	Gyeonggi     Province = "경기"
	Gangwon      Province = "강원"
	Chungbuk     Province = "충청북도"
	Chungnam     Province = "충청남도"
	Sejong       Province = "세종"
	Jeonnam      Province = "전라남도"
	Jeonbuk      Province = "전라북도"
	Gyeongbuk    Province = "경상북도"
	Gyeongnam    Province = "경상남도"
	Jeju         Province = "제주"
)

// Provinces is the selector order, starting with AllProvinces.
var Provinces = []Province{
	AllProvinces, Seoul, Busan, Daegu, Incheon, Gwangju, Daejeon, Ulsan,
	Gyeonggi, Gangwon, Chungbuk, Chungnam, Sejong, Jeonnam, Jeonbuk,
	Gyeongbuk, Gyeongnam, Jeju,
}

func (p Province) Valid() bool {
	for _, known := range Provinces {
		if p == known {
			return true
		}
	}
	return false
}

func (p Province) String() string {
	if p == AllProvinces {
		return "전체"
	}
	return string(p)
}

// Category is a certification category. The zero value selects all.
type Category string

const (
	AllCategories Category = ""
	Organic       Category = "유기농"
	NoPesticide   Category = "무농약"
)

var Categories = []Category{AllCategories, Organic, NoPesticide}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	if c == AllCategories {
		return "전체"
	}
	return string(c)
}
