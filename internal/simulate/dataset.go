package simulate

// Assemble builds one dataset: counts[0] healthy sequences plus counts[k]
// sequences of issue type k, concatenated in label order. len(counts) must
// equal Params.Classes().
func (g *Generator) Assemble(counts []int, noise NoiseModel) Dataset {
	var total int
	for _, n := range counts {
		total += n
	}

	ds := make(Dataset, 0, total)
	for i := 0; i < counts[0]; i++ {
		ds = append(ds, g.Normal(noise))
	}
	for issue := 1; issue < len(counts); issue++ {
		for i := 0; i < counts[issue]; i++ {
			ds = append(ds, g.Abnormal(issue, noise))
		}
	}
	return ds
}
