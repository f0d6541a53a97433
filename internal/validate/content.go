package validate

// Content validates template content size. maxLen <= 0 means no limit.
// Only size is checked: sections that fail to parse are still stored.
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return ErrContentTooLarge
	}
	return nil
}
