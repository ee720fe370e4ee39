package content

// Clone returns a deep copy of doc. Nil and empty slices stay distinct.
func Clone(doc Document) Document {
	return Document{
		Projects:    cloneEntries(doc.Projects),
		Experiments: cloneEntries(doc.Experiments),
		ContactInfo: doc.ContactInfo,
	}
}

// CloneEntry returns a deep copy of e.
func CloneEntry(e Entry) Entry {
	e.Stack = cloneStrings(e.Stack)
	e.Gallery = cloneStrings(e.Gallery)
	return e
}

func cloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = CloneEntry(e)
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
