package probe

import (
	"fmt"
	"testing"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateCPUsGroupsByModel(t *testing.T) {
	cores := []CoreRecord{
		{Model: "Intel(R) Core(TM) i7-12700H P-core", MHz: 4700},
		{Model: "Intel(R) Core(TM) i7-12700H P-core", MHz: 4600},
		{Model: "Intel(R) Core(TM) i7-12700H E-core", MHz: 3500},
		{Model: "Intel(R) Core(TM) i7-12700H P-core", MHz: 4400},
	}

	cpus := AggregateCPUs(cores)
	require.Len(t, cpus, 2)

	assert.Equal(t, "Intel(R) Core(TM) i7-12700H P-core", cpus[0].Model)
	assert.Equal(t, 3, cpus[0].Cores)
	assert.Equal(t, uint64(4700), cpus[0].FrequencyMHz, "frequency comes from the first core, not an average")

	assert.Equal(t, "Intel(R) Core(TM) i7-12700H E-core", cpus[1].Model)
	assert.Equal(t, 1, cpus[1].Cores)
	assert.Equal(t, uint64(3500), cpus[1].FrequencyMHz)
}

func TestAggregateCPUsEmpty(t *testing.T) {
	assert.Empty(t, AggregateCPUs(nil))
}

func TestAggregateCPUsCountsSumToInput(t *testing.T) {
	for n := 0; n <= 64; n += 7 {
		for k := 1; k <= 5; k++ {
			cores := make([]CoreRecord, n)
			distinct := map[string]bool{}
			for i := range cores {
				model := fmt.Sprintf("model-%d", (i*i+3)%k)
				cores[i] = CoreRecord{Model: model, MHz: uint64(i)}
				distinct[model] = true
			}

			cpus := AggregateCPUs(cores)
			assert.Len(t, cpus, len(distinct), "n=%d k=%d", n, k)

			sum := 0
			for _, c := range cpus {
				sum += c.Cores
			}
			assert.Equal(t, n, sum, "n=%d k=%d", n, k)
		}
	}
}

func TestExpandCores(t *testing.T) {
	t.Run("one entry per logical cpu", func(t *testing.T) {
		infos := []cpu.InfoStat{
			{ModelName: "AMD Ryzen 7 5800X", Mhz: 3800.2},
			{ModelName: "AMD Ryzen 7 5800X", Mhz: 3799.9},
		}
		records := expandCores(infos, 2)
		require.Len(t, records, 2)
		assert.Equal(t, uint64(3800), records[0].MHz)
	})

	t.Run("single package spread over logical count", func(t *testing.T) {
		infos := []cpu.InfoStat{{ModelName: "Apple M2 Pro", Mhz: 3504}}
		records := expandCores(infos, 12)
		require.Len(t, records, 12)
		for _, r := range records {
			assert.Equal(t, "Apple M2 Pro", r.Model)
		}
	})

	t.Run("uneven split across packages", func(t *testing.T) {
		infos := []cpu.InfoStat{{ModelName: "Xeon A"}, {ModelName: "Xeon B"}}
		records := expandCores(infos, 5)
		cpus := AggregateCPUs(records)
		require.Len(t, cpus, 2)
		assert.Equal(t, 3, cpus[0].Cores)
		assert.Equal(t, 2, cpus[1].Cores)
	})

	t.Run("unknown logical count", func(t *testing.T) {
		infos := []cpu.InfoStat{{ModelName: "x"}, {ModelName: "y"}, {ModelName: "x"}}
		assert.Len(t, expandCores(infos, 0), 3)
	})

	t.Run("no entries", func(t *testing.T) {
		assert.Empty(t, expandCores(nil, 8))
	})
}
