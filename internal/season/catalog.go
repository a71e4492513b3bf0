package season

import "strings"

// ColorType is one entry of the sixteen-type personal color catalog.
// Reference LAB values are standard scale, hand-picked per type from
// labeled sample medians.
type ColorType struct {
	ID          int
	Season      string
	SeasonEng   string
	Subtype     string
	SubtypeEng  string
	L, A, B     float64
	Description string
}

// Catalog is the full sixteen-type reference table, four subtypes per
// season. Read-only.
var Catalog = []ColorType{
	{1, "봄 웜톤", "Spring Warm", "봄 라이트", "Spring Light", 78, 15, 20,
		"밝고 노란기+맑고 따뜻, 높은 명도"},
	{2, "봄 웜톤", "Spring Warm", "봄 트루", "Spring True", 76, 16, 22,
		"높고 따뜻한 오렌지·피치 계열"},
	{3, "봄 웜톤", "Spring Warm", "봄 브라이트", "Spring Bright", 75, 17, 24,
		"밝고 선명, 대비감 강, 노랑+오렌지"},
	{4, "봄 웜톤", "Spring Warm", "봄 클리어", "Spring Clear", 77, 14, 19,
		"맑고 투명, 원색 포인트"},
	{5, "여름 쿨톤", "Summer Cool", "여름 라이트", "Summer Light", 74, 13, 14,
		"연하고 쿨, 소라·로즈 계열"},
	{6, "여름 쿨톤", "Summer Cool", "여름 소프트", "Summer Soft", 72, 12, 13,
		"부드럽고 은화, 그레이+핑크톤"},
	{7, "여름 쿨톤", "Summer Cool", "여름 트루", "Summer True", 73, 14, 13,
		"퓨어 쿨톤, 네이비·로즈레드"},
	{8, "여름 쿨톤", "Summer Cool", "여름 뮤트", "Summer Mute", 71, 12, 12,
		"저명도·저채도, 모브·그레이시톤"},
	{9, "가을 웜톤", "Autumn Warm", "가을 소프트", "Autumn Soft", 69, 16, 17,
		"부드러움, 베이지·올리브 계열"},
	{10, "가을 웜톤", "Autumn Warm", "가을 트루", "Autumn True", 68, 19, 20,
		"순수 가을, 브라운·오렌지·대지색"},
	{11, "가을 웜톤", "Autumn Warm", "가을 뮤트", "Autumn Mute", 67, 18, 19,
		"깊고 차분, 머스타드·딥카키"},
	{12, "가을 웜톤", "Autumn Warm", "가을 딥", "Autumn Deep", 63, 17, 16,
		"진하고 어두움, 초콜릿 브라운, 다크"},
	{13, "겨울 쿨톤", "Winter Cool", "겨울 브라이트", "Winter Bright", 70, 11, 10,
		"선명·고채도, 블랙&화이트 대비"},
	{14, "겨울 쿨톤", "Winter Cool", "겨울 트루", "Winter True", 65, 10, 9,
		"정석 쿨톤, 로얄블루·버건디·실버"},
	{15, "겨울 쿨톤", "Winter Cool", "겨울 딥", "Winter Deep", 60, 9, 8,
		"진하고 차가움, 플럼·다크버건디"},
	{16, "겨울 쿨톤", "Winter Cool", "겨울 클리어", "Winter Clear", 66, 12, 11,
		"맑고 투명, 아이시·잿빛"},
}

// SeasonTypes returns the catalog entries whose season label contains the
// given season bucket, e.g. "봄" selects the four 봄 웜톤 entries.
func SeasonTypes(season string) []ColorType {
	var out []ColorType
	for _, ct := range Catalog {
		if strings.Contains(ct.Season, season) {
			out = append(out, ct)
		}
	}
	return out
}

// BySubtype looks a catalog entry up by its Korean subtype name.
func BySubtype(subtype string) (ColorType, bool) {
	for _, ct := range Catalog {
		if ct.Subtype == subtype {
			return ct, true
		}
	}
	return ColorType{}, false
}
