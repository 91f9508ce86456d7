package weather

import (
	"fmt"
	"strings"
)

// ClimateSummary describes the expected conditions over days in one short
// paragraph, ending with packing advice.
func ClimateSummary(name string, days []DailyForecast) (string, error) {
	st, err := summarize(days)
	if err != nil {
		return "", err
	}
	avgHigh := Round(st.avgHigh)
	avgLow := Round(st.avgLow)

	var b strings.Builder
	fmt.Fprintf(&b, "This week in %s: ", name)

	switch {
	case avgHigh > 28:
		b.WriteString("hot afternoons")
	case avgHigh > 22:
		b.WriteString("warm afternoons")
	case avgHigh > 15:
		b.WriteString("mild days")
	case avgHigh > 10:
		b.WriteString("cool days")
	default:
		b.WriteString("cold days")
	}

	switch {
	case avgLow < 10:
		b.WriteString(", chilly evenings")
	case avgLow < 15:
		b.WriteString(", cool evenings")
	case avgLow < 20:
		b.WriteString(", mild evenings")
	default:
		b.WriteString(", warm evenings")
	}

	switch {
	case st.rainyDays >= 4:
		fmt.Fprintf(&b, ", frequent rain expected (%d days)", st.rainyDays)
	case st.rainyDays >= 2:
		fmt.Fprintf(&b, ", rain likely midweek (%d days)", st.rainyDays)
	case st.rainyDays == 1:
		b.WriteString(", occasional showers possible")
	default:
		b.WriteString(", mostly dry conditions")
	}

	b.WriteString(". ")

	var pack []string
	switch {
	case avgHigh > 25:
		pack = append(pack, "light clothing", "sunscreen")
	case avgHigh < 15:
		pack = append(pack, "warm jacket", "layers")
	default:
		pack = append(pack, "light layers")
	}
	if st.rainyDays > 0 {
		pack = append(pack, "umbrella")
		if st.rainyDays >= 2 {
			pack = append(pack, "waterproof shoes")
		}
	}
	if st.maxUV > 7 {
		pack = append(pack, "hat and sunglasses")
	}
	if st.maxWind > 30 {
		pack = append(pack, "windproof jacket")
	}

	b.WriteString("Pack " + FormatList(pack) + ".")
	return b.String(), nil
}

// FormatList joins items as English prose: "a", "a and b", "a, b, and c".
func FormatList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		last := len(items) - 1
		return strings.Join(items[:last], ", ") + ", and " + items[last]
	}
}
