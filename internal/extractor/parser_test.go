package extractor

import (
	"context"
	"testing"

	"declex/internal/adapter/lexer"
	"declex/internal/domain"
)

func parse(t *testing.T, source string) (*domain.SymbolTree, []domain.Diagnostic) {
	t.Helper()
	e := New()
	tree, diags, err := e.Extract(context.Background(), lexer.New().Tokenize(source))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree == nil {
		t.Fatal("expected a tree, got nil")
	}
	return tree, diags
}

func findDecl(decls []domain.Declaration, name string) *domain.Declaration {
	for i := range decls {
		if decls[i].Name == name {
			return &decls[i]
		}
	}
	return nil
}

func findMember(cls *domain.Class, name string) *domain.Member {
	for i := range cls.Members {
		if cls.Members[i].Decl.Name == name {
			return &cls.Members[i]
		}
	}
	return nil
}

const simpleClassHeader = `
#pragma once

#include <string>

namespace game {

/// A simple example class with basic members.
class SimpleClass {
public:
    SimpleClass();
    explicit SimpleClass(int value);
    ~SimpleClass();

    int getValue() const;
    void setValue(int value);

    const std::string& getName() const;
    void setName(const std::string& name);

    virtual void process();

    static SimpleClass* create(int value);

private:
    int m_value;
    std::string m_name;
    static int s_instanceCount;
};

} // namespace game
`

func TestParse_SimpleClassHeader(t *testing.T) {
	tree, diags := parse(t, simpleClassHeader)

	if len(diags) != 0 {
		t.Fatalf("expected clean parse, got diagnostics: %v", diags)
	}

	ns := findDecl(tree.Root.Namespace.Decls, "game")
	if ns == nil || ns.Kind != domain.DeclNamespace {
		t.Fatal("expected namespace game")
	}

	cd := findDecl(ns.Namespace.Decls, "SimpleClass")
	if cd == nil || cd.Kind != domain.DeclClass {
		t.Fatal("expected class SimpleClass inside game")
	}
	if cd.Doc != "A simple example class with basic members." {
		t.Errorf("unexpected doc: %q", cd.Doc)
	}
	cls := cd.Class
	if cls.Tag != "class" {
		t.Errorf("expected tag class, got %q", cls.Tag)
	}
	if !cls.Polymorphic {
		t.Error("expected polymorphic class (virtual process)")
	}

	pub := cls.MembersIn(domain.AccessPublic)
	if len(pub) != 9 {
		t.Fatalf("expected 9 public members, got %d", len(pub))
	}
	priv := cls.MembersIn(domain.AccessPrivate)
	if len(priv) != 3 {
		t.Fatalf("expected 3 private members, got %d", len(priv))
	}

	// Constructors are recognized positionally: no return type.
	ctor := findMember(cls, "SimpleClass")
	if ctor == nil || ctor.Decl.Kind != domain.DeclFunction {
		t.Fatal("expected constructor member")
	}
	if ctor.Decl.Function.ReturnType != "" {
		t.Errorf("constructor should have no return type, got %q", ctor.Decl.Function.ReturnType)
	}

	dtor := findMember(cls, "~SimpleClass")
	if dtor == nil {
		t.Fatal("expected destructor member")
	}

	getName := findMember(cls, "getName")
	if getName == nil {
		t.Fatal("expected getName member")
	}
	fn := getName.Decl.Function
	if fn.ReturnType != "const std::string&" {
		t.Errorf("unexpected return type: %q", fn.ReturnType)
	}
	if !fn.Qualifiers.Const {
		t.Error("expected const qualifier on getName")
	}
	if fn.IsDefinition {
		t.Error("getName is a declaration, not a definition")
	}

	setName := findMember(cls, "setName")
	if setName == nil {
		t.Fatal("expected setName member")
	}
	params := setName.Decl.Function.Params
	if len(params) != 1 || params[0].Name != "name" || params[0].Type != "const std::string&" {
		t.Errorf("unexpected setName params: %+v", params)
	}

	create := findMember(cls, "create")
	if create == nil {
		t.Fatal("expected create member")
	}
	if !create.Decl.Function.Qualifiers.Static {
		t.Error("expected static qualifier on create")
	}
	if create.Decl.Function.ReturnType != "SimpleClass*" {
		t.Errorf("unexpected create return type: %q", create.Decl.Function.ReturnType)
	}

	mv := findMember(cls, "m_value")
	if mv == nil || mv.Decl.Kind != domain.DeclVariable {
		t.Fatal("expected field m_value")
	}
	if mv.Decl.Variable.Type != "int" {
		t.Errorf("unexpected m_value type: %q", mv.Decl.Variable.Type)
	}
	if mv.Access != domain.AccessPrivate {
		t.Errorf("expected private access, got %q", mv.Access)
	}

	sc := findMember(cls, "s_instanceCount")
	if sc == nil || !sc.Decl.Variable.Qualifiers.Static {
		t.Error("expected static field s_instanceCount")
	}
}

const simpleClassSource = `
#include "simple_class.h"

namespace game {

int SimpleClass::s_instanceCount = 0;

SimpleClass::SimpleClass() : m_value(0), m_name("default") {
    ++s_instanceCount;
}

SimpleClass::~SimpleClass() {
    --s_instanceCount;
}

int SimpleClass::getValue() const {
    return m_value;
}

SimpleClass* SimpleClass::create(int value) {
    return new SimpleClass(value);
}

} // namespace game
`

func TestParse_OutOfClassDefinitions(t *testing.T) {
	tree, diags := parse(t, simpleClassSource)

	if len(diags) != 0 {
		t.Fatalf("expected clean parse, got diagnostics: %v", diags)
	}

	ns := findDecl(tree.Root.Namespace.Decls, "game")
	if ns == nil {
		t.Fatal("expected namespace game")
	}
	decls := ns.Namespace.Decls

	v := findDecl(decls, "SimpleClass::s_instanceCount")
	if v == nil || v.Kind != domain.DeclVariable {
		t.Fatal("expected out-of-class static definition")
	}
	if v.Variable.Init.IsZero() {
		t.Error("expected initializer range")
	}

	ctor := findDecl(decls, "SimpleClass::SimpleClass")
	if ctor == nil || ctor.Kind != domain.DeclFunction {
		t.Fatal("expected constructor definition")
	}
	if !ctor.Function.IsDefinition {
		t.Error("expected definition with body")
	}
	if ctor.Function.Body.IsZero() {
		t.Error("expected body range")
	}

	dtor := findDecl(decls, "SimpleClass::~SimpleClass")
	if dtor == nil {
		t.Fatal("expected destructor definition")
	}

	getValue := findDecl(decls, "SimpleClass::getValue")
	if getValue == nil {
		t.Fatal("expected getValue definition")
	}
	if getValue.Function.ReturnType != "int" || !getValue.Function.Qualifiers.Const {
		t.Errorf("unexpected getValue: %+v", getValue.Function)
	}
}

const unrealHeader = `
#pragma once

#include "CoreMinimal.h"
#include "GameFramework/Character.h"
#include "UnrealCharacter.generated.h"

UENUM(BlueprintType)
enum class ECharacterState : uint8
{
    Idle,
    Walking,
    Running,
    Attacking,
    Dead
};

UCLASS(Blueprintable, BlueprintType)
class MYGAME_API AUnrealCharacter : public ACharacter
{
    GENERATED_BODY()

public:
    AUnrealCharacter();

    virtual void Tick(float DeltaTime) override;

    UFUNCTION(BlueprintCallable, Category = "Character")
    void SetCharacterState(ECharacterState NewState);

    UFUNCTION(BlueprintCallable, Category = "Character")
    ECharacterState GetCharacterState() const;

protected:
    virtual void BeginPlay() override;

    UPROPERTY(EditAnywhere, BlueprintReadWrite, Category = "Stats")
    float Health;

    UPROPERTY(VisibleAnywhere, BlueprintReadOnly, Category = "State")
    ECharacterState CurrentState;

private:
    void HandleDeath();
};
`

func TestParse_UnrealHeader(t *testing.T) {
	tree, diags := parse(t, unrealHeader)

	if len(diags) != 0 {
		t.Fatalf("expected clean parse, got diagnostics: %v", diags)
	}
	decls := tree.Root.Namespace.Decls

	ed := findDecl(decls, "ECharacterState")
	if ed == nil || ed.Kind != domain.DeclEnum {
		t.Fatal("expected enum ECharacterState")
	}
	if !ed.Enum.Scoped {
		t.Error("expected scoped enum")
	}
	if ed.Enum.Underlying != "uint8" {
		t.Errorf("unexpected underlying type: %q", ed.Enum.Underlying)
	}
	if len(ed.Enum.Enumerators) != 5 || ed.Enum.Enumerators[4] != "Dead" {
		t.Errorf("unexpected enumerators: %v", ed.Enum.Enumerators)
	}
	if len(ed.Attributes) != 1 || ed.Attributes[0].Name != "UENUM" {
		t.Fatalf("expected UENUM attribute, got %v", ed.Attributes)
	}
	if len(ed.Attributes[0].Args) != 1 || ed.Attributes[0].Args[0] != "BlueprintType" {
		t.Errorf("unexpected UENUM args: %v", ed.Attributes[0].Args)
	}

	cd := findDecl(decls, "AUnrealCharacter")
	if cd == nil || cd.Kind != domain.DeclClass {
		t.Fatal("expected class AUnrealCharacter (export macro must not become the name)")
	}

	// UCLASS annotates the declaration; GENERATED_BODY floats up from the
	// class body. Source order is preserved.
	if len(cd.Attributes) != 2 {
		t.Fatalf("expected 2 class attributes, got %v", cd.Attributes)
	}
	if cd.Attributes[0].Name != "UCLASS" {
		t.Errorf("expected UCLASS first, got %q", cd.Attributes[0].Name)
	}
	wantArgs := []string{"Blueprintable", "BlueprintType"}
	for i, want := range wantArgs {
		if cd.Attributes[0].Args[i] != want {
			t.Errorf("UCLASS arg %d: expected %q, got %q", i, want, cd.Attributes[0].Args[i])
		}
	}
	if cd.Attributes[1].Name != "GENERATED_BODY" {
		t.Errorf("expected GENERATED_BODY second, got %q", cd.Attributes[1].Name)
	}

	cls := cd.Class
	if len(cls.Bases) != 1 || cls.Bases[0].Name != "ACharacter" || cls.Bases[0].Access != domain.AccessPublic {
		t.Errorf("unexpected bases: %+v", cls.Bases)
	}
	if !cls.Polymorphic {
		t.Error("expected polymorphic class")
	}

	tick := findMember(cls, "Tick")
	if tick == nil {
		t.Fatal("expected Tick member")
	}
	if !tick.Decl.Function.Qualifiers.Virtual || !tick.Decl.Function.Qualifiers.Override {
		t.Errorf("unexpected Tick qualifiers: %+v", tick.Decl.Function.Qualifiers)
	}

	setState := findMember(cls, "SetCharacterState")
	if setState == nil {
		t.Fatal("expected SetCharacterState member")
	}
	if len(setState.Decl.Attributes) != 1 || setState.Decl.Attributes[0].Name != "UFUNCTION" {
		t.Fatalf("expected UFUNCTION attribute, got %v", setState.Decl.Attributes)
	}
	args := setState.Decl.Attributes[0].Args
	if len(args) != 2 || args[0] != "BlueprintCallable" || args[1] != `Category = "Character"` {
		t.Errorf("unexpected UFUNCTION args: %v", args)
	}

	health := findMember(cls, "Health")
	if health == nil || health.Decl.Kind != domain.DeclVariable {
		t.Fatal("expected Health field")
	}
	if health.Access != domain.AccessProtected {
		t.Errorf("expected protected access, got %q", health.Access)
	}
	if len(health.Decl.Attributes) != 1 || health.Decl.Attributes[0].Name != "UPROPERTY" {
		t.Errorf("expected UPROPERTY on Health, got %v", health.Decl.Attributes)
	}

	handleDeath := findMember(cls, "HandleDeath")
	if handleDeath == nil || handleDeath.Access != domain.AccessPrivate {
		t.Error("expected private HandleDeath")
	}
}

const containerHeader = `
template<typename T>
class Container {
public:
    Container();

    void add(const T& item);
    T get(int index) const;
    int size() const;

private:
    std::vector<T> m_items;
};

template<typename T>
void Container<T>::add(const T& item) {
    m_items.push_back(item);
}
`

func TestParse_Template(t *testing.T) {
	tree, diags := parse(t, containerHeader)

	if len(diags) != 0 {
		t.Fatalf("expected clean parse, got diagnostics: %v", diags)
	}
	decls := tree.Root.Namespace.Decls
	if len(decls) != 2 {
		t.Fatalf("expected 2 top-level declarations, got %d", len(decls))
	}

	td := decls[0]
	if td.Kind != domain.DeclTemplate || td.Name != "Container" {
		t.Fatalf("expected template Container, got %s %s", td.Kind, td.Name)
	}
	if len(td.Template.Params) != 1 {
		t.Fatalf("expected 1 template parameter, got %d", len(td.Template.Params))
	}
	tp := td.Template.Params[0]
	if tp.Kind != "type" || tp.Name != "T" {
		t.Errorf("unexpected template parameter: %+v", tp)
	}

	inner := td.Template.Decl
	if inner == nil || inner.Kind != domain.DeclClass {
		t.Fatal("expected wrapped class")
	}
	items := findMember(inner.Class, "m_items")
	if items == nil {
		t.Fatal("expected m_items field")
	}
	if items.Decl.Variable.Type != "std::vector<T>" {
		t.Errorf("unexpected m_items type: %q", items.Decl.Variable.Type)
	}

	outOfClass := decls[1]
	if outOfClass.Kind != domain.DeclTemplate {
		t.Fatalf("expected templated definition, got %s", outOfClass.Kind)
	}
	fn := outOfClass.Template.Decl
	if fn.Name != "Container<T>::add" {
		t.Errorf("unexpected name: %q", fn.Name)
	}
	if !fn.Function.IsDefinition {
		t.Error("expected definition")
	}
}

func TestParse_StackedTemplateListsCollapse(t *testing.T) {
	tree, _ := parse(t, `
template<typename T>
template<typename U>
void Outer<T>::method(U value) {}
`)
	decls := tree.Root.Namespace.Decls
	if len(decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(decls))
	}
	td := decls[0]
	if td.Kind != domain.DeclTemplate {
		t.Fatalf("expected template, got %s", td.Kind)
	}
	if len(td.Template.Params) != 2 {
		t.Fatalf("expected 2 collapsed parameters, got %d", len(td.Template.Params))
	}
	if td.Template.Decl.Kind != domain.DeclFunction {
		t.Error("wrapped declaration must not itself be a template")
	}
}

func TestParse_ValueTemplateParam(t *testing.T) {
	tree, _ := parse(t, "template<typename T, int N> class Array {};")
	td := tree.Root.Namespace.Decls[0]
	params := td.Template.Params
	if len(params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(params))
	}
	if params[1].Kind != "value" || params[1].Name != "N" || params[1].Type != "int" {
		t.Errorf("unexpected value parameter: %+v", params[1])
	}
}

func TestParse_StructDefaultsPublic(t *testing.T) {
	tree, _ := parse(t, "struct Point { int x; int y; private: int hidden; };")
	cd := tree.Root.Namespace.Decls[0]
	cls := cd.Class
	if cls.Tag != "struct" {
		t.Fatalf("expected struct tag, got %q", cls.Tag)
	}
	if got := len(cls.MembersIn(domain.AccessPublic)); got != 2 {
		t.Errorf("expected 2 public members, got %d", got)
	}
	if got := len(cls.MembersIn(domain.AccessPrivate)); got != 1 {
		t.Errorf("expected 1 private member, got %d", got)
	}
	if cls.Polymorphic {
		t.Error("struct without virtual members must not be polymorphic")
	}
}

func TestParse_BaseListDefaults(t *testing.T) {
	tree, _ := parse(t, `
class A : B, public virtual C {};
struct D : E {};
`)
	decls := tree.Root.Namespace.Decls

	a := findDecl(decls, "A").Class
	if a.Bases[0].Access != domain.AccessPrivate {
		t.Errorf("class base default should be private, got %q", a.Bases[0].Access)
	}
	if a.Bases[1].Access != domain.AccessPublic || !a.Bases[1].Virtual {
		t.Errorf("unexpected second base: %+v", a.Bases[1])
	}

	d := findDecl(decls, "D").Class
	if d.Bases[0].Access != domain.AccessPublic {
		t.Errorf("struct base default should be public, got %q", d.Bases[0].Access)
	}
}

func TestParse_PureVirtual(t *testing.T) {
	tree, _ := parse(t, "class Shape { public: virtual double area() const = 0; };")
	cls := tree.Root.Namespace.Decls[0].Class
	area := findMember(cls, "area")
	if area == nil {
		t.Fatal("expected area member")
	}
	fn := area.Decl.Function
	if !fn.Pure || !fn.Qualifiers.Virtual || !fn.Qualifiers.Const {
		t.Errorf("unexpected pure virtual: %+v", fn)
	}
	if !cls.Polymorphic {
		t.Error("expected polymorphic class")
	}
}

func TestParse_ForwardDeclarationsSkipped(t *testing.T) {
	tree, diags := parse(t, `
class Forward;
struct AlsoForward;
enum class Opaque : int;
class Real {};
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	decls := tree.Root.Namespace.Decls
	if len(decls) != 1 || decls[0].Name != "Real" {
		t.Errorf("expected only Real, got %d decls", len(decls))
	}
}

func TestParse_NestedNamespaces(t *testing.T) {
	tree, _ := parse(t, `
namespace outer {
namespace inner {
void helper();
}
}
namespace a::b { int x; }
`)
	decls := tree.Root.Namespace.Decls

	outer := findDecl(decls, "outer")
	if outer == nil {
		t.Fatal("expected namespace outer")
	}
	inner := findDecl(outer.Namespace.Decls, "inner")
	if inner == nil {
		t.Fatal("expected namespace inner")
	}
	if findDecl(inner.Namespace.Decls, "helper") == nil {
		t.Error("expected helper inside inner")
	}

	ab := findDecl(decls, "a::b")
	if ab == nil {
		t.Fatal("expected shorthand nested namespace a::b")
	}
}

func TestParse_ExternC(t *testing.T) {
	tree, diags := parse(t, `
extern "C" {
void c_function(int arg);
}
void after();
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	decls := tree.Root.Namespace.Decls
	if findDecl(decls, "c_function") == nil {
		t.Error("expected c_function at file scope")
	}
	if findDecl(decls, "after") == nil {
		t.Error("expected after at file scope")
	}
}

func TestParse_DocCommentAttachment(t *testing.T) {
	tree, _ := parse(t, `
// Computes the frobnication factor.
int frob();

/* unrelated block */

int bare();
`)
	decls := tree.Root.Namespace.Decls

	frob := findDecl(decls, "frob")
	if frob.Doc != "Computes the frobnication factor." {
		t.Errorf("unexpected doc: %q", frob.Doc)
	}

	bare := findDecl(decls, "bare")
	if bare.Doc != "unrelated block" {
		// The nearest preceding comment wins, even if it reads unrelated.
		t.Errorf("unexpected doc: %q", bare.Doc)
	}
}

func TestParse_UnknownMacroStatementSkipped(t *testing.T) {
	tree, diags := parse(t, `
DECLARE_LOG_CATEGORY_EXTERN(LogGame, Log, All);
class Next {};
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	decls := tree.Root.Namespace.Decls
	next := findDecl(decls, "Next")
	if next == nil {
		t.Fatal("expected class Next")
	}
	if len(next.Attributes) != 0 {
		t.Errorf("standalone macro statement must not attach to Next: %v", next.Attributes)
	}
}

func TestParse_UnknownMacroAnnotatesDeclaration(t *testing.T) {
	tree, _ := parse(t, `
DEPRECATED_API(4, 2)
void oldFunction();
`)
	old := findDecl(tree.Root.Namespace.Decls, "oldFunction")
	if old == nil {
		t.Fatal("expected oldFunction")
	}
	if len(old.Attributes) != 1 || old.Attributes[0].Name != "DEPRECATED_API" {
		t.Fatalf("expected DEPRECATED_API attribute, got %v", old.Attributes)
	}
	if len(old.Attributes[0].Args) != 2 {
		t.Errorf("unexpected args: %v", old.Attributes[0].Args)
	}
}

func TestParse_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New()
	tree, _, err := e.Extract(ctx, lexer.New().Tokenize("class X {}; class Y {};"))
	if err == nil {
		t.Fatal("expected context error")
	}
	if tree == nil {
		t.Fatal("expected partial tree even on cancellation")
	}
}

func TestParse_SourceRanges(t *testing.T) {
	tree, _ := parse(t, "class X {\n  void f();\n};")
	cd := tree.Root.Namespace.Decls[0]
	if cd.Range.Start.Line != 1 {
		t.Errorf("expected class to start at line 1, got %d", cd.Range.Start.Line)
	}
	if cd.Range.End.Line != 3 {
		t.Errorf("expected class to end at line 3, got %d", cd.Range.End.Line)
	}
	if cd.Range.End.Offset <= cd.Range.Start.Offset {
		t.Error("expected non-empty range")
	}
	f := cd.Class.Members[0].Decl
	if f.Range.Start.Line != 2 {
		t.Errorf("expected member at line 2, got %d", f.Range.Start.Line)
	}
}

func TestParse_AllCapsClassMembers(t *testing.T) {
	tree, diags := parse(t, `
class FOO {
public:
    FOO();
    explicit FOO(int id);
    virtual ~FOO();
};
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	foo := findDecl(tree.Root.Namespace.Decls, "FOO")
	if foo == nil {
		t.Fatal("missing class FOO")
	}
	if len(foo.Attributes) != 0 {
		t.Errorf("constructor must not become a class attribute, got %v", foo.Attributes)
	}
	if len(foo.Class.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(foo.Class.Members))
	}

	ctor := &foo.Class.Members[0].Decl
	if ctor.Name != "FOO" || ctor.Kind != domain.DeclFunction || ctor.Function.ReturnType != "" {
		t.Errorf("expected default constructor, got %+v", ctor)
	}
	second := &foo.Class.Members[1].Decl
	if second.Name != "FOO" || !second.Function.Qualifiers.Explicit || len(second.Function.Params) != 1 {
		t.Errorf("expected explicit one-argument constructor, got %+v", second)
	}

	dtor := findMember(foo.Class, "~FOO")
	if dtor == nil {
		t.Fatal("missing destructor ~FOO")
	}
	if !dtor.Decl.Function.Qualifiers.Virtual {
		t.Error("expected virtual destructor")
	}
	if !foo.Class.Polymorphic {
		t.Error("virtual destructor must make FOO polymorphic")
	}
}

func TestParse_AllCapsOutOfClassConstructor(t *testing.T) {
	tree, diags := parse(t, "FOO::FOO() : m_id(0) {}\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	def := findDecl(tree.Root.Namespace.Decls, "FOO::FOO")
	if def == nil {
		t.Fatal("missing FOO::FOO definition")
	}
	if !def.Function.IsDefinition {
		t.Error("expected a definition with a body")
	}
}

func TestParse_VirtualDestructorAloneIsPolymorphic(t *testing.T) {
	tree, _ := parse(t, `
class Handle {
public:
    Handle();
    virtual ~Handle();
};
class Plain {
public:
    Plain();
    ~Plain();
};
`)
	handle := findDecl(tree.Root.Namespace.Decls, "Handle")
	if handle == nil {
		t.Fatal("missing Handle")
	}
	dtor := findMember(handle.Class, "~Handle")
	if dtor == nil {
		t.Fatal("missing ~Handle")
	}
	if !dtor.Decl.Function.Qualifiers.Virtual {
		t.Error("expected ~Handle to carry virtual")
	}
	if !handle.Class.Polymorphic {
		t.Error("a virtual destructor alone must make the class polymorphic")
	}

	plain := findDecl(tree.Root.Namespace.Decls, "Plain")
	if plain == nil {
		t.Fatal("missing Plain")
	}
	if plain.Class.Polymorphic {
		t.Error("a non-virtual destructor must not make the class polymorphic")
	}
}

func TestParse_AttributeOrderAtNamespaceScope(t *testing.T) {
	tree, _ := parse(t, `
GENERATED_USTRUCT_BODY()
USTRUCT(BlueprintType)
struct FVec {};
`)
	vec := findDecl(tree.Root.Namespace.Decls, "FVec")
	if vec == nil {
		t.Fatal("missing FVec")
	}
	if len(vec.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %v", vec.Attributes)
	}
	if vec.Attributes[0].Name != "GENERATED_USTRUCT_BODY" || vec.Attributes[1].Name != "USTRUCT" {
		t.Errorf("attributes out of source order: %v", vec.Attributes)
	}
}
