package lexer

// Annotation is the effect of a recognized #[...] pragma.
type Annotation int

const (
	AnnotationPartialEval Annotation = iota
	AnnotationNoPartialEval
	AnnotationStatic
	AnnotationDynamic
)

var annotationNames = map[string]Annotation{
	"pe":      AnnotationPartialEval,
	"nope":    AnnotationNoPartialEval,
	"static":  AnnotationStatic,
	"dynamic": AnnotationDynamic,
}

// ParseAnnotation matches a pragma name case-sensitively. Unrecognized names
// report false and must not change lexer state.
func ParseAnnotation(name string) (Annotation, bool) {
	a, ok := annotationNames[name]
	return a, ok
}

// Enables reports whether the annotation switches PE mode on.
func (a Annotation) Enables() bool {
	return a == AnnotationPartialEval || a == AnnotationStatic
}

func (a Annotation) String() string {
	for name, v := range annotationNames {
		if v == a {
			return name
		}
	}
	return "unknown"
}
