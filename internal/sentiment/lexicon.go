package sentiment

// buildLexicon returns word valences on the VADER scale (-4..4), general
// English terms plus crypto vocabulary.
func buildLexicon() map[string]float64 {
	return map[string]float64{
		// General positive
		"love":        3.2,
		"loved":       2.9,
		"great":       3.1,
		"good":        1.9,
		"best":        3.2,
		"amazing":     2.8,
		"awesome":     3.1,
		"excellent":   2.7,
		"happy":       2.7,
		"win":         2.8,
		"winning":     2.4,
		"profit":      2.2,
		"profits":     2.2,
		"gain":        2.4,
		"gains":       2.4,
		"strong":      2.3,
		"growth":      2.4,
		"grow":        2.0,
		"rise":        1.7,
		"rising":      1.7,
		"optimistic":  2.0,
		"confident":   2.2,
		"success":     2.7,
		"opportunity": 2.0,
		"free":        2.3,
		"hope":        1.9,
		"hopeful":     2.3,

		// Crypto positive
		"bullish":       2.9,
		"bull":          2.1,
		"moon":          2.6,
		"mooning":       2.6,
		"rally":         2.3,
		"surge":         2.1,
		"surged":        2.1,
		"pump":          1.6,
		"breakout":      2.0,
		"ath":           2.4,
		"hodl":          1.5,
		"adoption":      1.8,
		"institutional": 1.3,
		"halving":       1.2,
		"approved":      2.0,

		// General negative
		"hate":     -2.7,
		"hated":    -2.7,
		"bad":      -2.5,
		"worst":    -3.1,
		"terrible": -2.1,
		"horrible": -2.5,
		"awful":    -2.0,
		"sad":      -2.1,
		"angry":    -2.3,
		"fear":     -2.2,
		"afraid":   -2.2,
		"scared":   -2.2,
		"panic":    -2.5,
		"loss":     -2.4,
		"losses":   -2.4,
		"lose":     -2.4,
		"losing":   -2.4,
		"weak":     -1.9,
		"risk":     -1.1,
		"risky":    -1.4,
		"fail":     -2.5,
		"failed":   -2.3,
		"failure":  -2.6,
		"fraud":    -2.8,
		"scam":     -2.9,
		"worried":  -1.9,
		"worry":    -1.9,
		"doubt":    -1.5,
		"warning":  -1.6,

		// Crypto negative
		"bearish":     -2.9,
		"bear":        -1.9,
		"crash":       -2.8,
		"crashed":     -2.8,
		"crashing":    -2.8,
		"dump":        -2.2,
		"dumped":      -2.2,
		"dumping":     -2.2,
		"plunge":      -2.4,
		"plunged":     -2.4,
		"collapse":    -2.7,
		"collapsed":   -2.7,
		"selloff":     -2.0,
		"liquidated":  -2.3,
		"liquidation": -2.1,
		"fud":         -1.8,
		"rekt":        -2.4,
		"bubble":      -1.6,
		"ban":         -2.0,
		"banned":      -2.1,
		"hack":        -2.5,
		"hacked":      -2.6,
	}
}
