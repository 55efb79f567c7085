package probe

import "github.com/monify-labs/hostfetch/pkg/models"

// CoreRecord is what the OS reports for a single logical CPU
type CoreRecord struct {
	Model string
	MHz   uint64
}

// AggregateCPUs groups logical cores by exact model string. Each entry
// keeps the frequency of the first core seen for its model; later cores
// only add to the count. Entries come out in first-appearance order.
func AggregateCPUs(cores []CoreRecord) []models.CPUInfo {
	cpus := make([]models.CPUInfo, 0, 1)
	index := make(map[string]int)

	for _, core := range cores {
		i, ok := index[core.Model]
		if !ok {
			i = len(cpus)
			index[core.Model] = i
			cpus = append(cpus, models.CPUInfo{
				Model:        core.Model,
				FrequencyMHz: core.MHz,
			})
		}
		cpus[i].Cores++
	}

	return cpus
}
