package tagging

// Default classification data. Both tables are configuration, not
// policy: a YAML rules file replaces them wholesale at startup.

var defaultRules = []Rule{
	{Pattern: `(Android|안드로이드|Webview|AsyncTask|Eclipse|Xdebug|Gradle|JQuery|jQuery|JavaScript|PowerShell|WSH|NAVER Tech Talk|디버깅)`, Tag: "tech/dev"},
	{Pattern: `(연서|가족|어린이집|증명사진|아기새|여권|가족)`, Tag: "life/family"},
	{Pattern: `(주차단속|집매매|철수확인서|인수인계|계약서|의견진술|익명신고|윤리경영|공정위|1종 보통 적성검사)`, Tag: "legal/admin"},
	{Pattern: `(비염|안약|헤르페스|건강)`, Tag: "health"},
	{Pattern: `(아이디어|계획|TODO|솔루션|관리툴|아이템)`, Tag: "idea/project"},
	{Pattern: `(정약용|주52시간|뉴스|철학|사회|매일경제|Chosunbiz)`, Tag: "society/thought"},
	{Pattern: `(NAS|시놀로지|DLNA|랜선|UTP|FTP|케이블)`, Tag: "hardware/it"},
	{Pattern: `(영농|농업|스마트팜|논|밭|수확|파종|유통)`, Tag: "agri/farm"},
}

var defaultSubtags = map[string][]string{
	"has_pdf":         {"pdf"},
	"has_hanword":     {"hwp", "hwpx"},
	"has_docx":        {"docx", "doc"},
	"has_images":      {"jpg", "jpeg", "png", "gif"},
	"has_archives":    {"zip", "rar"},
	"has_mht":         {"mht", "mhtml"},
	"has_audio":       {"wma", "mp3", "wav"},
	"has_spreadsheet": {"xlsx", "xls", "csv"},
}
