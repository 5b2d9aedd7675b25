// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sim

import (
	"fmt"
	"math/rand"
	"time"

	"grimm.is/cybershield/internal/model"
)

// TimestampLayout matches the backend's local ISO timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// CategoryAnomaly is reported when the packet-size series turns
// deterministic, regardless of the per-packet verdict.
const CategoryAnomaly = "Anomaly (RQA)"

// anomalyDET is the determinism percentage above which traffic is flagged.
const anomalyDET = 90

var (
	protocols = []string{"tcp", "udp", "icmp"}
	services  = []string{"http", "ftp", "smtp", "telnet", "ssh", "domain", "private"}
	attacks   = []string{model.CategoryDoS, model.CategoryProbe, model.CategoryR2L, model.CategoryU2R}
)

// Packet is one synthetic connection record.
type Packet struct {
	At        time.Time
	SrcIP     string
	DstIP     string
	Protocol  string
	Service   string
	SrcBytes  int
	Malicious bool
	// Attack is the injected category for malicious packets.
	Attack string
}

// Generator produces synthetic traffic. It is not safe for concurrent use.
type Generator struct {
	rng            *rand.Rand
	MaliciousRatio float64
}

// NewGenerator seeds a generator. A zero seed uses the clock.
func NewGenerator(seed int64, maliciousRatio float64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), MaliciousRatio: maliciousRatio}
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) pick(from []string) string {
	return from[g.rng.Intn(len(from))]
}

func (g *Generator) Next(at time.Time) Packet {
	p := Packet{
		At:        at,
		Malicious: g.rng.Float64() < g.MaliciousRatio,
		Protocol:  g.pick(protocols),
		Service:   g.pick(services),
		SrcIP:     fmt.Sprintf("192.168.%d.%d", g.between(1, 254), g.between(1, 254)),
		DstIP:     fmt.Sprintf("10.0.%d.%d", g.between(1, 254), g.between(1, 254)),
	}
	if p.Malicious {
		p.SrcBytes = g.between(10000, 1000000)
		p.Attack = g.pick(attacks)
	} else {
		p.SrcBytes = g.between(100, 10000)
	}
	return p
}

// Verdict is the fused classification of one packet.
type Verdict struct {
	Prediction  string
	Confidence  float64
	ThreatLevel string
	Malicious   bool
}

// Classify fuses the packet verdict with the RQA determinism. A
// deterministic series overrides everything as a critical anomaly.
func (g *Generator) Classify(p Packet, det float64) Verdict {
	switch {
	case det > anomalyDET:
		return Verdict{Prediction: CategoryAnomaly, Confidence: 0.95, ThreatLevel: "Critical", Malicious: true}
	case p.Malicious:
		score := 0.6 + g.rng.Float64()*0.39
		level := "Medium"
		if score > 0.8 {
			level = "High"
		}
		return Verdict{Prediction: p.Attack, Confidence: score, ThreatLevel: level, Malicious: true}
	default:
		return Verdict{Prediction: model.CategoryNormal, Confidence: 0.85 + g.rng.Float64()*0.14, ThreatLevel: "Low"}
	}
}
