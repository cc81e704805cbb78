package view

import (
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/format"
	"github.com/goodnatureofminers/powboard-backend/internal/model"
	"github.com/goodnatureofminers/powboard-backend/internal/power"
	"github.com/goodnatureofminers/powboard-backend/pkg/safe"
	"github.com/shopspring/decimal"
)

// enrich derives the display fields of record. Mined records are valued at
// their own mining-time rate, everything else at rate.
func enrich(record model.Record, rate decimal.Decimal, now time.Time) model.DisplayRecord {
	effective := rate
	if record.MinedBSVUSD != nil {
		effective = *record.MinedBSVUSD
	}

	d := model.DisplayRecord{Record: record}
	d.DisplayValue = format.SatoshisToFiat(record.Value, effective)
	d.USD = d.DisplayValue
	d.DisplayDate = format.RelativeTime(record.CreatedAt, now)

	minedDate := record.CreatedAt
	if record.MinedAt != nil {
		minedDate = *record.MinedAt
	}
	d.DisplayMinedDate = format.RelativeTime(minedDate, now)
	d.DisplayMagicNumber = format.TruncateID(record.MagicNumber, format.DefaultIDLength)

	if record.MinedAt != nil {
		interval := format.HumanInterval(safe.NonNegative(*record.MinedAt - record.CreatedAt))
		d.MinedIn = &interval
	}

	d.Emoji = nonEmpty(record.Emoji)
	d.MinedNumber = nonEmpty(record.MinedNumber)
	if d.MinedNumber != nil {
		pow := power.CountPow(*d.MinedNumber, record.MagicNumber)
		d.Power = &pow
	}

	return d
}

func enrichAll(records []model.Record, rate decimal.Decimal, now time.Time) []model.DisplayRecord {
	out := make([]model.DisplayRecord, 0, len(records))
	for _, r := range records {
		out = append(out, enrich(r, rate, now))
	}
	return out
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// powerEntry counts a record without a power score as zero.
func powerEntry(d model.DisplayRecord) power.Entry {
	var p float64
	if d.Power != nil {
		p = float64(*d.Power)
	}
	return power.Entry{Power: p, Polarity: power.PolarityOf(d.Emoji)}
}
