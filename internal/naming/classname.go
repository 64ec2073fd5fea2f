package naming

// classRenames resolves collisions with SkookumScript built-ins and
// shortens static function libraries that scripts reference constantly.
var classRenames = map[string]string{
	"Object": "Entity",
	"Class":  "EntityClass",
	"Enum":   "Enum2",

	"DataTableFunctionLibrary":          "DataLib",
	"GameplayStatics":                   "GameLib",
	"HeadMountedDisplayFunctionLibrary": "VRLib",
	"KismetArrayLibrary":                "ArrayLib",
	"KismetGuidLibrary":                 "GuidLib",
	"KismetInputLibrary":                "InputLib",
	"KismetMaterialLibrary":             "MaterialLib",
	"KismetMathLibrary":                 "MathLib",
	"KismetNodeHelperLibrary":           "NodeLib",
	"KismetStringLibrary":               "StringLib",
	"KismetSystemLibrary":               "SystemLib",
	"KismetTextLibrary":                 "TextLib",
	"VisualLoggerKismetLibrary":         "LogLib",
}

// ClassName returns the SkookumScript class name for a host class or struct.
// Host class names are already PascalCase, so names outside the rename table
// pass through unchanged.
func ClassName(name string) string {
	if renamed, ok := classRenames[name]; ok {
		return renamed
	}
	return name
}
