package trainer

// flush folds a worker's local processed-word count into the shared
// counter, decays the shared learning rate, and reports progress — but
// only once wcl has crossed flushThreshold (§4.7 step 2). force bypasses
// the threshold check, used once at worker exit so a short corpus (or
// the last partial region a worker reads) still contributes its word
// count before the worker returns; without this, a run whose total word
// count never crosses flushThreshold per worker would leave
// wordCountActual at 0 forever and the epoch driver would never observe
// progress.
func (tr *Trainer) flush(epochIndex int, wcl *int64, force bool) {
	if !force && *wcl <= flushThreshold {
		return
	}
	local := *wcl
	*wcl = 0
	if local == 0 {
		return
	}

	total := tr.wordCountActual.Add(local)

	denom := float64(tr.cfg.Epochs) * float64(tr.vocab.TrainWords)
	newAlpha := tr.cfg.Alpha
	if denom > 0 {
		newAlpha = tr.cfg.Alpha - float64(total)*(tr.cfg.Alpha/denom)
	}
	if newAlpha < 0 {
		newAlpha = 0
	}
	tr.alpha.Store(newAlpha)

	if tr.reporter != nil {
		tr.reporter(Progress{
			Epoch:          epochIndex,
			WordCountTotal: total,
			WordBudget:     tr.vocab.TrainWords * int64(tr.cfg.Epochs),
			Alpha:          newAlpha,
		})
	}
}
