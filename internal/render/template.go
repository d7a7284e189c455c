package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"lazycf/internal/scrapers/codeforces"

	"github.com/gosimple/slug"
)

type TemplateKind string

const (
	TemplateCpp    TemplateKind = "cpp"
	TemplatePython TemplateKind = "python"
	TemplateJava   TemplateKind = "java"
	TemplateOther  TemplateKind = "other"
)

var templateExtensions = map[TemplateKind]string{
	TemplateCpp:    "cpp",
	TemplatePython: "py",
	TemplateJava:   "java",
	TemplateOther:  "txt",
}

var solutionTemplates = map[TemplateKind]*template.Template{
	TemplateCpp: template.Must(template.New("cpp").Parse(`#include <bits/stdc++.h>
using namespace std;

int main() {
    ios_base::sync_with_stdio(false);
    cin.tie(NULL);

    // Solution for {{.Id}}: {{.Name}}

    return 0;
}
`)),
	TemplatePython: template.Must(template.New("python").Parse(`# Solution for {{.Id}}: {{.Name}}

def solve():
    pass

if __name__ == "__main__":
    solve()
`)),
	TemplateJava: template.Must(template.New("java").Parse(`import java.util.*;
import java.io.*;

public class Solution {
    public static void main(String[] args) {
        Scanner sc = new Scanner(System.in);

        // Solution for {{.Id}}: {{.Name}}

        sc.close();
    }
}
`)),
	TemplateOther: template.Must(template.New("other").Parse(`// Solution for {{.Id}}: {{.Name}}
`)),
}

// ParseTemplateKind accepts a template name ("cpp", "python", ...) or a
// language label of the submit form, anything else is TemplateOther.
func ParseTemplateKind(name string) TemplateKind {
	lower := strings.ToLower(strings.TrimSpace(name))
	switch {
	case lower == string(TemplateCpp) || strings.Contains(lower, "++"):
		return TemplateCpp
	case strings.HasPrefix(lower, "python") || strings.HasPrefix(lower, "pypy"):
		return TemplatePython
	case lower == string(TemplateJava) || (strings.HasPrefix(lower, "java") && !strings.HasPrefix(lower, "javascript")):
		return TemplateJava
	}
	return TemplateOther
}

// SolutionTemplate returns the starting source of a solution and the file
// extension it should be saved with.
func SolutionTemplate(p codeforces.Problem, kind TemplateKind) (string, string, error) {
	tmpl, ok := solutionTemplates[kind]
	if !ok {
		kind = TemplateOther
		tmpl = solutionTemplates[kind]
	}

	var out bytes.Buffer
	err := tmpl.Execute(&out, struct {
		Id   string
		Name string
	}{
		Id:   problemId(p),
		Name: p.Name,
	})
	if err != nil {
		return "", "", fmt.Errorf("render %s template: %w", kind, err)
	}
	return out.String(), templateExtensions[kind], nil
}

// SuggestedFilename is "<contest><index>_<name>.<ext>" with the name reduced
// to lowercase letters, digits and underscores.
func SuggestedFilename(p codeforces.Problem, ext string) string {
	name := strings.ReplaceAll(slug.Make(p.Name), "-", "_")
	if name == "" {
		return fmt.Sprintf("%s.%s", problemId(p), ext)
	}
	return fmt.Sprintf("%s_%s.%s", problemId(p), name, ext)
}
