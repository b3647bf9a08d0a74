package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"saajhamandi/internal/catalog"
	"saajhamandi/internal/domain"
)

func TestExtract(t *testing.T) {
	e := NewExtractor(catalog.Default())

	tests := []struct {
		name      string
		utterance string
		want      []domain.Mention
	}{
		{
			name:      "quantities with units",
			utterance: "2kg tomatoes and 1 liter milk",
			want: []domain.Mention{
				{RawName: "tomatoes", RawQuantity: "2 kg"},
				{RawName: "milk", RawQuantity: "1 liter"},
			},
		},
		{
			name:      "grams",
			utterance: "500g butter",
			want:      []domain.Mention{{RawName: "butter", RawQuantity: "500 g"}},
		},
		{
			name:      "bare count",
			utterance: "6 eggs",
			want:      []domain.Mention{{RawName: "eggs", RawQuantity: "6"}},
		},
		{
			name:      "no quantity",
			utterance: "bananas",
			want:      []domain.Mention{{RawName: "banana"}},
		},
		{
			name:      "of between unit and product",
			utterance: "Get me 2 kg of Rice please",
			want:      []domain.Mention{{RawName: "rice", RawQuantity: "2 kg"}},
		},
		{
			name:      "plural unit",
			utterance: "2 liters milk",
			want:      []domain.Mention{{RawName: "milk", RawQuantity: "2 liters"}},
		},
		{
			name:      "decimal quantity",
			utterance: "1.5 kg onions",
			want:      []domain.Mention{{RawName: "onions", RawQuantity: "1.5 kg"}},
		},
		{
			name:      "pattern matches precede substring matches",
			utterance: "some bread and 3 kg potatoes",
			want: []domain.Mention{
				{RawName: "potatoes", RawQuantity: "3 kg"},
				{RawName: "bread"},
			},
		},
		{
			name:      "substring matches follow catalog order",
			utterance: "cheese, milk and apples",
			want: []domain.Mention{
				{RawName: "milk"},
				{RawName: "apple"},
				{RawName: "cheese"},
			},
		},
		{
			name:      "first occurrence wins",
			utterance: "2 kg tomatoes and 3 kg tomato",
			want:      []domain.Mention{{RawName: "tomatoes", RawQuantity: "2 kg"}},
		},
		{
			name:      "number without catalog word",
			utterance: "5 kg of mangoes",
			want:      nil,
		},
		{
			name:      "no vocabulary",
			utterance: "hello, can you hear me?",
			want:      nil,
		},
		{
			name:      "empty",
			utterance: "",
			want:      nil,
		},
		{
			name:      "unit is not read out of a longer word",
			utterance: "500 grapes and 1 curd",
			want:      []domain.Mention{{RawName: "curd", RawQuantity: "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ExtractAll(tt.utterance))
		})
	}
}

func TestExtract_StopsEarly(t *testing.T) {
	e := NewExtractor(catalog.Default())

	var got []domain.Mention
	for m := range e.Extract("1 kg rice, 2 kg sugar and some milk") {
		got = append(got, m)
		break
	}

	assert.Equal(t, []domain.Mention{{RawName: "rice", RawQuantity: "1 kg"}}, got)
}

func TestExtract_NeverPanics(t *testing.T) {
	e := NewExtractor(catalog.Default())

	inputs := []string{
		"1",
		"kg",
		"999999999999999999999999 kg rice",
		"2 kg",
		"of of of 3",
		"\x00\xff 2kg ₹ tomatoes",
		"१२ kg rice",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { e.ExtractAll(in) }, in)
	}
}
