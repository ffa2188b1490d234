package app

// clamp clamps v into [min, max].
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

type columns struct {
	node, cpu, bar, load, mem, gpu, jobs int
}

// colWidths splits the table width; the JOBID column takes what is left.
func colWidths(total int) columns {
	c := columns{node: 10, cpu: 9, load: 10, mem: 11, gpu: 7}
	fixed := c.node + c.cpu + c.load + c.mem + c.gpu
	remain := total - fixed
	if remain < 30 {
		remain = 30
	}
	c.bar = clamp(remain/6, 6, 20)
	c.jobs = clamp(remain-2*c.bar, 18, 200)
	return c
}
