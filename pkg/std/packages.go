package std

import "github.com/siyuan-infoblox/java-imports-group/pkg/grammar"

// Namespace roots of the Java platform
const (
	StandardRoot  = "java"
	ExtensionRoot = "javax"
)

// Builtins holds names that are always visible without an import: the
// primitive types and the commonly used members of java.lang.
var Builtins = map[string]bool{
	// primitives
	"boolean": true,
	"byte":    true,
	"char":    true,
	"double":  true,
	"float":   true,
	"int":     true,
	"long":    true,
	"short":   true,
	"void":    true,
	"var":     true,

	// java.lang
	"Appendable":                      true,
	"ArithmeticException":             true,
	"ArrayIndexOutOfBoundsException":  true,
	"ArrayStoreException":             true,
	"AssertionError":                  true,
	"AutoCloseable":                   true,
	"Boolean":                         true,
	"Byte":                            true,
	"CharSequence":                    true,
	"Character":                       true,
	"Class":                           true,
	"ClassCastException":              true,
	"ClassLoader":                     true,
	"ClassNotFoundException":          true,
	"CloneNotSupportedException":      true,
	"Cloneable":                       true,
	"Comparable":                      true,
	"Deprecated":                      true,
	"Double":                          true,
	"Enum":                            true,
	"Error":                           true,
	"Exception":                       true,
	"ExceptionInInitializerError":     true,
	"Float":                           true,
	"FunctionalInterface":             true,
	"IllegalAccessException":          true,
	"IllegalArgumentException":        true,
	"IllegalStateException":           true,
	"IndexOutOfBoundsException":       true,
	"InheritableThreadLocal":          true,
	"Integer":                         true,
	"InterruptedException":            true,
	"Iterable":                        true,
	"LinkageError":                    true,
	"Long":                            true,
	"Math":                            true,
	"Module":                          true,
	"NegativeArraySizeException":      true,
	"NoSuchFieldException":            true,
	"NoSuchMethodException":           true,
	"NullPointerException":            true,
	"Number":                          true,
	"NumberFormatException":           true,
	"Object":                          true,
	"OutOfMemoryError":                true,
	"Override":                        true,
	"Package":                         true,
	"Process":                         true,
	"ProcessBuilder":                  true,
	"Readable":                        true,
	"Record":                          true,
	"ReflectiveOperationException":    true,
	"Runnable":                        true,
	"Runtime":                         true,
	"RuntimeException":                true,
	"SafeVarargs":                     true,
	"SecurityException":               true,
	"Short":                           true,
	"StackOverflowError":              true,
	"StackTraceElement":               true,
	"StrictMath":                      true,
	"String":                          true,
	"StringBuffer":                    true,
	"StringBuilder":                   true,
	"StringIndexOutOfBoundsException": true,
	"SuppressWarnings":                true,
	"System":                          true,
	"Thread":                          true,
	"ThreadLocal":                     true,
	"Throwable":                       true,
	"UnsupportedOperationException":   true,
	"Void":                            true,
}

// IsBuiltin reports whether name never needs an import
func IsBuiltin(name string) bool {
	return Builtins[name]
}

// IsStandardPackage reports whether path lives under the java root
func IsStandardPackage(path grammar.Path) bool {
	return path.First() == StandardRoot
}

// IsExtensionPackage reports whether path lives under the javax root
func IsExtensionPackage(path grammar.Path) bool {
	return path.First() == ExtensionRoot
}
