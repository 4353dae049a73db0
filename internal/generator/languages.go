package generator

// Language is a target language known to xsd2code.
type Language struct {
	Name    string // value passed to -lang
	Display string
	Ext     string // conventional output file extension
}

// Languages lists the targets xsd2code understands, in its own help order.
// The list is informational: -lang values are passed through unchecked.
var Languages = []Language{
	{Name: "go", Display: "Go", Ext: ".go"},
	{Name: "java", Display: "Java", Ext: ".java"},
	{Name: "csharp", Display: "C#", Ext: ".cs"},
	{Name: "python", Display: "Python", Ext: ".py"},
}

// LookupLanguage finds a language by its -lang name.
func LookupLanguage(name string) (Language, bool) {
	for _, l := range Languages {
		if l.Name == name {
			return l, true
		}
	}
	return Language{}, false
}

// DisplayName returns the human name for a -lang value, or the value itself
// when it is not a known language.
func DisplayName(name string) string {
	if l, ok := LookupLanguage(name); ok {
		return l.Display
	}
	return name
}
