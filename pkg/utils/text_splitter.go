package utils

// SplitText cuts text into rune-safe chunks of about chunkSize
// characters, each overlapping the previous one by 'overlap' so context
// survives the boundary. Character-based on purpose: chunk sizes are
// chosen well below embedding context limits, so a tokenizer pass is
// not worth the dependency.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}
	return chunks
}
