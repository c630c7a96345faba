package report

import "github.com/erazemk/bso/internal/model"

// Compress groups pairs by series, keeping each series' numbers in the
// order received, and folds every run of consecutive numbers into one
// range. Input is never sorted: a decreasing sequence yields singletons.
func Compress(pairs []model.SeriesNumber) model.SeriesRanges {
	grouped := make(map[string][]int)
	for _, p := range pairs {
		grouped[p.Series] = append(grouped[p.Series], p.Number)
	}

	result := make(model.SeriesRanges, len(grouped))
	for series, numbers := range grouped {
		result[series] = compressNumbers(numbers)
	}
	return result
}

func compressNumbers(numbers []int) []model.Range {
	if len(numbers) == 0 {
		return nil
	}

	var ranges []model.Range
	current := model.Range{Start: numbers[0], End: numbers[0]}
	for _, n := range numbers[1:] {
		if n == current.End+1 {
			current.End = n
			continue
		}
		ranges = append(ranges, current)
		current = model.Range{Start: n, End: n}
	}
	return append(ranges, current)
}
