package translator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kashinulala/j2py/pkg/config"
	"github.com/Kashinulala/j2py/pkg/translator"
)

func translate(t *testing.T, source string) string {
	t.Helper()
	res := translator.Translate(source, nil)
	require.False(t, res.Diagnostics.HasErrors(), "unexpected errors: %v", res.Diagnostics.Errors())
	require.NotEmpty(t, res.Code, "a clean run must produce output")
	return res.Code
}

func wrap(stmts string) string {
	return "public class Main { public static void main(String[] args) { " + stmts + " } }"
}

func TestRoundTrip(t *testing.T) {
	code := translate(t, wrap("int x = 2; if (x < 3) { System.out.println(x); }"))
	assert.Contains(t, code, "def main(args):")
	assert.Contains(t, code, "x = 2")
	assert.Contains(t, code, "if x < 3:")
	assert.Contains(t, code, "print(x)")
	assert.Contains(t, code, "main([])")
}

func TestCountedForBecomesRange(t *testing.T) {
	code := translate(t, wrap("for (int i = 0; i < 5; i++) { System.out.println(i); }"))
	assert.Contains(t, code, "for i in range(5):")
	assert.NotContains(t, code, "while")
}

func TestForRangeVariants(t *testing.T) {
	code := translate(t, wrap("for (int i = 1; i <= 10; i++) { System.out.println(i); }"))
	assert.Contains(t, code, "for i in range(1, 11):")

	code = translate(t, wrap("for (int i = 9; i >= 0; i--) { System.out.println(i); }"))
	assert.Contains(t, code, "for i in range(9, -1, -1):")

	code = translate(t, wrap("for (int i = 0; i < 10; i += 2) { System.out.println(i); }"))
	assert.Contains(t, code, "for i in range(0, 10, 2):")
}

func TestCompoundConditionFallsBack(t *testing.T) {
	code := translate(t, wrap("boolean flag = true; for (int i = 0; i < 5 && flag; i++) { flag = false; }"))
	assert.Contains(t, code, "i = 0")
	assert.Contains(t, code, "while i < 5 and flag:")
	assert.Contains(t, code, "i += 1", "the update statement survives the fallback")
	assert.NotContains(t, code, "range(")
}

func TestEnhancedFor(t *testing.T) {
	code := translate(t, wrap("int[] nums = new int[3]; for (int n : nums) { System.out.println(n); }"))
	assert.Contains(t, code, "for n in nums:")
}

func TestDoWhile(t *testing.T) {
	code := translate(t, wrap("int j = 3; do { j--; } while (j > 0);"))
	assert.Contains(t, code, "while True:")
	assert.Contains(t, code, "j -= 1")
	assert.Contains(t, code, "if not (j > 0):")
	assert.Contains(t, code, "break")
}

func TestSwitchRewrite(t *testing.T) {
	code := translate(t, wrap(`int day = 2; String name = "";
        switch (day) {
            case 1:
                name = "mon";
                break;
            case 2:
            case 3:
                name = "midweek";
                break;
            default:
                name = "other";
        }`))
	assert.Contains(t, code, "_switch_1 = day")
	assert.Contains(t, code, "if _switch_1 == 1:")
	assert.Contains(t, code, "elif _switch_1 == 2 or _switch_1 == 3:")
	// The default group contributes no branch.
	assert.NotContains(t, code, "else:")
	assert.NotContains(t, code, `"other"`)
}

func TestSwitchDropsNestedBreak(t *testing.T) {
	code := translate(t, wrap(`int x = 1; boolean b = true;
        switch (x) {
            case 1:
                if (b) { break; }
                x = 2;
                break;
        }`))
	// A conditional switch exit has no loop in the rewritten chain.
	assert.NotContains(t, code, "break")
	assert.Contains(t, code, "if b:")
	assert.Contains(t, code, "pass")
	assert.Contains(t, code, "x = 2")
}

func TestSwitchKeepsLoopBreak(t *testing.T) {
	code := translate(t, wrap(`int x = 1;
        switch (x) {
            case 1:
                while (true) { break; }
                break;
        }`))
	assert.Contains(t, code, "while True:")
	assert.Contains(t, code, "break")
}

func TestSwitchErrorSuppressesGeneration(t *testing.T) {
	res := translator.Translate(wrap("int x = 1; switch (x) { case 1: break; case 1: break; }"), nil)
	assert.True(t, res.Diagnostics.HasErrors())
	assert.Empty(t, res.Code, "diagnostics and no generated text")
}

func TestBooleanAndNullLiterals(t *testing.T) {
	code := translate(t, wrap("boolean ok = true; boolean no = false; String s = null; if (ok && !no) { System.out.println(s); }"))
	assert.Contains(t, code, "ok = True")
	assert.Contains(t, code, "no = False")
	assert.Contains(t, code, "s = None")
	assert.Contains(t, code, "if ok and not no:")
}

func TestDefaultInitializers(t *testing.T) {
	code := translate(t, wrap("int x; double d; boolean b; String s; System.out.println(x);"))
	assert.Contains(t, code, "x = 0")
	assert.Contains(t, code, "d = 0.0")
	assert.Contains(t, code, "b = False")
	assert.Contains(t, code, `s = ""`)
}

func TestContainers(t *testing.T) {
	code := translate(t, wrap(`ArrayList<Integer> l = new ArrayList<Integer>();
        HashMap<String, Integer> m = new HashMap<String, Integer>();
        HashSet<Integer> st = new HashSet<Integer>();
        l.add(4);
        m.put("k", 1);
        System.out.println(l.get(0));
        System.out.println(l.size());`))
	assert.Contains(t, code, "l = []")
	assert.Contains(t, code, "m = {}")
	assert.Contains(t, code, "st = set()")
	assert.Contains(t, code, "l.append(4)")
	assert.Contains(t, code, `m["k"] = 1`)
	assert.Contains(t, code, "print(l[0])")
	assert.Contains(t, code, "print(len(l))")
}

func TestArrayCreationAndLength(t *testing.T) {
	code := translate(t, wrap("int[] a = new int[4]; a[0] = 7; System.out.println(a.length);"))
	assert.Contains(t, code, "a = [0] * (4)")
	assert.Contains(t, code, "a[0] = 7")
	assert.Contains(t, code, "print(len(a))")
}

func TestStringConcatWrapping(t *testing.T) {
	code := translate(t, wrap(`int total = 9; System.out.println("total: " + total);`))
	assert.Contains(t, code, `print("total: " + str(total))`)
}

func TestFieldsBecomeModuleAssignments(t *testing.T) {
	code := translate(t, `public class Main {
        static int count = 3;
        public static void main(String[] args) {
            System.out.println(count);
        }
    }`)
	assert.Contains(t, code, "count = 3")
	assert.Contains(t, code, "print(count)")
}

func TestHelperMethods(t *testing.T) {
	code := translate(t, `public class Main {
        static int square(int n) {
            return n * n;
        }
        public static void main(String[] args) {
            System.out.println(square(4));
        }
    }`)
	assert.Contains(t, code, "def square(n):")
	assert.Contains(t, code, "return n * n")
	assert.Contains(t, code, "print(square(4))")
}

func TestEntryCallToggle(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetFeature(config.FeatEntryCall, false)
	res := translator.Translate(wrap("int x = 1;"), cfg)
	require.False(t, res.Diagnostics.HasErrors())
	assert.NotContains(t, res.Code, "main([])")
}

func TestPostProcessToggle(t *testing.T) {
	cfg := config.NewConfig()
	cfg.SetFeature(config.FeatPostProcess, false)
	res := translator.Translate(wrap("System.out.println(1);"), cfg)
	require.False(t, res.Diagnostics.HasErrors())
	assert.Contains(t, res.Code, "System.out.println(1)", "the fix-up stage is off")
}

func TestIndentWidth(t *testing.T) {
	cfg := config.NewConfig()
	cfg.IndentWidth = 2
	res := translator.Translate(wrap("int x = 1;"), cfg)
	require.False(t, res.Diagnostics.HasErrors())
	assert.True(t, strings.Contains(res.Code, "\n  x = 1"), "two-space indentation:\n%s", res.Code)
}

func TestSyntaxErrorStopsPipeline(t *testing.T) {
	res := translator.Translate("public class Main { public static void main(String[] args) { int = 5; } }", nil)
	assert.True(t, res.Diagnostics.HasErrors())
	assert.Empty(t, res.Code)
}

func TestEmptyMethodBodyGetsPass(t *testing.T) {
	code := translate(t, "public class Main { public static void main(String[] args) { } }")
	assert.Contains(t, code, "def main(args):")
	assert.Contains(t, code, "pass")
}
