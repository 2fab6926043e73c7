// Package templategen produces quiz questions from a curated template
// bank. It is the fallback path: no network, no model, no failure mode.
// Given a well-formed request it always returns exactly the requested
// number of questions.
package templategen

import (
	"strings"

	"github.com/quizhive/quizgen/internal/quiz"
)

// Card is one fact about a concept: the concept name, the statement that
// serves as the correct answer, and a short explanation.
type Card struct {
	Concept string
	Answer  string
	Explain string
}

// LevelSet holds everything needed to build questions at one difficulty.
// Recall templates take one concept. Applied templates take two; pairing
// concepts is what makes a question applied rather than recall.
type LevelSet struct {
	Cards       []Card
	Recall      []string
	Applied     []string
	Distractors []string
}

// Entry is the template material for one topic across all difficulties.
type Entry struct {
	Topic  string
	Levels map[quiz.Difficulty]LevelSet
}

// Bank maps topics to entries. Lookup is case-insensitive and tolerates
// partial matches, so "AWS Lambda" still lands on the aws entry.
type Bank struct {
	entries []Entry
	generic Entry
}

// Lookup resolves a topic to its entry. Unknown topics get the generic
// entry, so Lookup never fails.
func (b *Bank) Lookup(topic string) Entry {
	needle := strings.ToLower(strings.TrimSpace(topic))

	for _, e := range b.entries {
		if e.Topic == needle {
			return e
		}
	}
	for _, e := range b.entries {
		if strings.Contains(needle, e.Topic) || strings.Contains(e.Topic, needle) {
			return e
		}
	}
	return b.generic
}

// Topics lists the topics the bank covers explicitly, excluding the
// generic catch-all.
func (b *Bank) Topics() []string {
	out := make([]string, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e.Topic)
	}
	return out
}

// level returns the LevelSet for d, falling back to medium for entries
// that do not distinguish difficulties.
func (e Entry) level(d quiz.Difficulty) LevelSet {
	if ls, ok := e.Levels[d]; ok {
		return ls
	}
	return e.Levels[quiz.DifficultyMedium]
}

// fallbackDistractors pads the wrong-answer pool when an entry's own
// material cannot supply three distinct distractors.
var fallbackDistractors = []string{
	"It is deprecated and should not be used",
	"It only applies to legacy systems",
	"It has no effect on the result",
	"It is purely a naming convention",
}

// DefaultBank returns the built-in template bank.
func DefaultBank() *Bank {
	return &Bank{
		entries: []Entry{
			algebraEntry,
			geometryEntry,
			pythonEntry,
			javascriptEntry,
			awsEntry,
			dockerEntry,
		},
		generic: genericEntry,
	}
}

var algebraEntry = Entry{
	Topic: "algebra",
	Levels: map[quiz.Difficulty]LevelSet{
		quiz.DifficultyEasy: {
			Cards: []Card{
				{"a variable", "A symbol that stands for an unknown value", "Variables let the same expression describe many different numbers."},
				{"a coefficient", "The number multiplying a variable", "In 3x the coefficient 3 scales the variable x."},
				{"a constant", "A fixed value that does not change", "Constants keep the same value no matter what the variables are."},
				{"a linear equation", "An equation whose variables appear only to the first power", "No squares or higher powers appear in a linear equation."},
			},
			Recall: []string{
				"In algebra, what is %s?",
				"Which statement best describes %s?",
				"What does %s mean in an equation?",
			},
			Applied: []string{
				"An expression contains both %s and %s. Which statement about the first is correct?",
				"When simplifying an expression that mixes %s with %s, what does the first contribute?",
			},
			Distractors: []string{
				"A rule for rounding decimal numbers",
				"The answer to a multiplication table",
			},
		},
		quiz.DifficultyMedium: {
			Cards: []Card{
				{"factoring", "Rewriting an expression as a product of simpler expressions", "Factoring reverses expansion and exposes the roots of a polynomial."},
				{"the distributive property", "a(b + c) equals ab + ac", "Distribution lets a factor outside parentheses multiply each term inside."},
				{"a quadratic equation", "An equation of the form ax² + bx + c = 0", "The squared term is what makes an equation quadratic."},
				{"a system of equations", "Two or more equations solved for the same variables together", "A solution to a system must satisfy every equation at once."},
			},
			Recall: []string{
				"Which statement correctly describes %s?",
				"What is %s?",
				"How is %s defined?",
			},
			Applied: []string{
				"A problem requires %s before applying %s. Which statement about the first step is correct?",
				"To solve a word problem you combine %s with %s. What does the first technique give you?",
			},
			Distractors: []string{
				"A method that only works for prime numbers",
				"An identity that holds only when x equals zero",
			},
		},
		quiz.DifficultyHard: {
			Cards: []Card{
				{"the discriminant", "b² - 4ac, which determines how many real roots a quadratic has", "A positive discriminant gives two real roots, zero gives one, negative gives none."},
				{"polynomial long division", "Dividing one polynomial by another to get a quotient and remainder", "Long division on polynomials mirrors the integer algorithm term by term."},
				{"completing the square", "Rewriting ax² + bx + c so the variable appears inside a single squared term", "Completing the square turns any quadratic into vertex form."},
				{"a rational expression", "A ratio of two polynomials", "Rational expressions are undefined wherever the denominator is zero."},
			},
			Recall: []string{
				"Which statement correctly characterizes %s?",
				"What is %s?",
			},
			Applied: []string{
				"A solution needs %s followed by %s. Which statement about the first is correct?",
				"Deriving the quadratic formula uses %s rather than %s. What does the chosen technique do?",
			},
			Distractors: []string{
				"A shortcut that only applies to monic cubics",
				"A transformation that changes the roots of the equation",
			},
		},
	},
}

var geometryEntry = Entry{
	Topic: "geometry",
	Levels: map[quiz.Difficulty]LevelSet{
		quiz.DifficultyEasy: {
			Cards: []Card{
				{"a right angle", "An angle of exactly 90 degrees", "A right angle is the corner of a square."},
				{"the perimeter", "The total distance around a shape", "Perimeter adds up every side length."},
				{"the area of a rectangle", "Length multiplied by width", "Counting unit squares inside a rectangle gives length times width."},
				{"parallel lines", "Lines in a plane that never intersect", "Parallel lines keep the same distance apart forever."},
			},
			Recall: []string{
				"In geometry, what is %s?",
				"Which statement best describes %s?",
			},
			Applied: []string{
				"A figure involves both %s and %s. Which statement about the first is correct?",
				"To analyze a floor plan you need %s as well as %s. What does the first tell you?",
			},
			Distractors: []string{
				"A measurement taken only in three dimensions",
				"The number of corners a shape has",
			},
		},
		quiz.DifficultyMedium: {
			Cards: []Card{
				{"the Pythagorean theorem", "In a right triangle, a² + b² = c²", "The squares on the two legs together equal the square on the hypotenuse."},
				{"congruent figures", "Figures with exactly the same size and shape", "Congruent figures match perfectly when superimposed."},
				{"the circumference of a circle", "Pi times the diameter", "Circumference scales linearly with the diameter, with ratio pi."},
				{"an isosceles triangle", "A triangle with at least two equal sides", "Equal sides in an isosceles triangle face equal base angles."},
			},
			Recall: []string{
				"Which statement correctly describes %s?",
				"What does %s state?",
			},
			Applied: []string{
				"A construction uses %s together with %s. Which statement about the first is correct?",
				"Surveying a plot requires %s before %s. What does the first provide?",
			},
			Distractors: []string{
				"A rule that holds only for equilateral triangles",
				"A formula involving the cube of the radius",
			},
		},
		quiz.DifficultyHard: {
			Cards: []Card{
				{"similar triangles", "Triangles with equal angles and proportional sides", "Similarity preserves shape while allowing a change of scale."},
				{"the inscribed angle theorem", "An inscribed angle is half the central angle on the same arc", "Every inscribed angle subtending the same arc is equal."},
				{"a geometric proof by contradiction", "Assuming the negation and deriving an impossibility", "If the negation forces a contradiction, the original statement must hold."},
				{"the law of cosines", "c² = a² + b² - 2ab·cos(C)", "The law of cosines generalizes the Pythagorean theorem to any triangle."},
			},
			Recall: []string{
				"Which statement correctly characterizes %s?",
				"What does %s assert?",
			},
			Applied: []string{
				"A proof chains %s with %s. Which statement about the first is correct?",
				"Solving an oblique triangle needs %s instead of %s. What does the chosen tool state?",
			},
			Distractors: []string{
				"A theorem that applies only in non-Euclidean geometry",
				"An identity valid only for unit circles",
			},
		},
	},
}

var pythonEntry = Entry{
	Topic: "python",
	Levels: map[quiz.Difficulty]LevelSet{
		quiz.DifficultyEasy: {
			Cards: []Card{
				{"a list", "An ordered, mutable sequence of values", "Lists keep insertion order and can be changed in place."},
				{"a dictionary", "A mapping from keys to values", "Dictionaries look values up by key instead of position."},
				{"indentation", "How Python marks the body of a block", "Python uses leading whitespace where other languages use braces."},
				{"a for loop", "A statement that iterates over the items of a sequence", "Python's for loop walks any iterable, not just numeric ranges."},
			},
			Recall: []string{
				"In Python, what is %s?",
				"Which statement best describes %s?",
			},
			Applied: []string{
				"A script combines %s with %s. Which statement about the first is correct?",
				"Processing a file uses %s inside %s. What does the first do?",
			},
			Distractors: []string{
				"A construct that requires a semicolon at the end",
				"A feature removed in Python 3",
			},
		},
		quiz.DifficultyMedium: {
			Cards: []Card{
				{"a list comprehension", "A compact expression that builds a list from an iterable", "Comprehensions fold a loop and an append into a single expression."},
				{"a generator", "A function that yields values lazily, one at a time", "Generators produce items on demand instead of building the whole sequence."},
				{"a context manager", "An object used with the with statement to manage setup and teardown", "Context managers guarantee cleanup runs even when the body raises."},
				{"duck typing", "Treating an object by its behavior rather than its declared type", "If it quacks like the needed interface, Python will use it."},
			},
			Recall: []string{
				"Which statement correctly describes %s?",
				"What is %s?",
			},
			Applied: []string{
				"A data pipeline relies on %s together with %s. Which statement about the first is correct?",
				"Refactoring replaces a loop with %s feeding %s. What does the first provide?",
			},
			Distractors: []string{
				"A mechanism that only works inside classes",
				"A syntax that compiles to machine code",
			},
		},
		quiz.DifficultyHard: {
			Cards: []Card{
				{"the global interpreter lock", "A mutex that lets only one thread execute Python bytecode at a time", "The GIL serializes bytecode execution, so CPU-bound threads do not run in parallel."},
				{"a decorator", "A callable that wraps another callable to extend its behavior", "Decorators apply at definition time and replace the function with the wrapper."},
				{"a metaclass", "The class of a class, controlling how classes are created", "Instantiating a class invokes its metaclass the way instantiating an object invokes its class."},
				{"asyncio", "Python's cooperative single-threaded concurrency framework", "asyncio interleaves coroutines at await points on one event loop."},
			},
			Recall: []string{
				"Which statement correctly characterizes %s?",
				"What is %s?",
			},
			Applied: []string{
				"A service mixes %s with %s. Which statement about the first is correct?",
				"Choosing %s over %s changes how the program schedules work. What does the chosen one do?",
			},
			Distractors: []string{
				"A feature that enables true multi-threaded bytecode execution",
				"A tool used only for packaging",
			},
		},
	},
}

var javascriptEntry = Entry{
	Topic: "javascript",
	Levels: map[quiz.Difficulty]LevelSet{
		quiz.DifficultyEasy: {
			Cards: []Card{
				{"a variable declared with const", "A binding that cannot be reassigned", "const prevents reassignment, though object contents can still change."},
				{"an array", "An ordered list of values accessed by index", "Arrays in JavaScript grow dynamically and can hold mixed types."},
				{"a function", "A reusable block of code that can take arguments and return a value", "Functions are first-class values in JavaScript."},
				{"the console.log function", "A call that prints a value to the console", "console.log is the standard way to inspect values while developing."},
			},
			Recall: []string{
				"In JavaScript, what is %s?",
				"Which statement best describes %s?",
			},
			Applied: []string{
				"A page script uses %s together with %s. Which statement about the first is correct?",
				"Debugging code that mixes %s and %s starts with the first. What does it do?",
			},
			Distractors: []string{
				"A keyword that only works in strict mode",
				"A value that must be a number",
			},
		},
		quiz.DifficultyMedium: {
			Cards: []Card{
				{"a promise", "An object representing the eventual result of an asynchronous operation", "A promise settles exactly once, either fulfilled with a value or rejected with a reason."},
				{"a closure", "A function that captures variables from its enclosing scope", "Closures keep their captured variables alive after the outer function returns."},
				{"an arrow function", "A compact function form that inherits this from its surrounding scope", "Arrow functions do not rebind this, which makes them handy for callbacks."},
				{"destructuring", "Unpacking values from arrays or objects into variables", "Destructuring mirrors the shape of the data on the left-hand side."},
			},
			Recall: []string{
				"Which statement correctly describes %s?",
				"What is %s?",
			},
			Applied: []string{
				"An event handler combines %s with %s. Which statement about the first is correct?",
				"Refactoring callback code introduces %s alongside %s. What does the first give you?",
			},
			Distractors: []string{
				"A construct that blocks the main thread until it finishes",
				"A feature available only in Node.js",
			},
		},
		quiz.DifficultyHard: {
			Cards: []Card{
				{"the event loop", "The mechanism that schedules callbacks onto JavaScript's single thread", "The event loop drains the microtask queue before taking the next macrotask."},
				{"prototypal inheritance", "Objects delegating property lookups to a chain of prototype objects", "A failed property lookup walks up the prototype chain until it hits null."},
				{"hoisting", "Moving declarations to the top of their scope before execution", "var declarations hoist with undefined; let and const hoist into a temporal dead zone."},
				{"a WeakMap", "A key-value map whose object keys do not prevent garbage collection", "WeakMap entries vanish when nothing else references the key."},
			},
			Recall: []string{
				"Which statement correctly characterizes %s?",
				"What is %s?",
			},
			Applied: []string{
				"A memory leak hunt involves %s and %s. Which statement about the first is correct?",
				"Understanding async ordering requires %s more than %s. What does it do?",
			},
			Distractors: []string{
				"A mechanism that runs callbacks on a worker thread automatically",
				"A legacy feature removed in ES6",
			},
		},
	},
}

var awsEntry = Entry{
	Topic: "aws",
	Levels: map[quiz.Difficulty]LevelSet{
		quiz.DifficultyEasy: {
			Cards: []Card{
				{"Amazon S3", "An object storage service for files of any size", "S3 stores objects in buckets and serves them over HTTP."},
				{"Amazon EC2", "A service that rents virtual machines in the cloud", "EC2 instances are resizable virtual servers you control."},
				{"an AWS region", "A geographic area containing isolated data centers", "Regions let you place workloads close to users and within jurisdictions."},
				{"AWS IAM", "The service that manages identities and permissions", "IAM policies define who may perform which actions on which resources."},
			},
			Recall: []string{
				"In AWS, what is %s?",
				"Which statement best describes %s?",
			},
			Applied: []string{
				"A deployment uses %s together with %s. Which statement about the first is correct?",
				"Hosting a static site involves %s and %s. What does the first provide?",
			},
			Distractors: []string{
				"A desktop application for editing documents",
				"A service that only runs on-premises",
			},
		},
		quiz.DifficultyMedium: {
			Cards: []Card{
				{"AWS Lambda", "A service that runs code on demand without provisioned servers", "Lambda bills per invocation and scales automatically with load."},
				{"an Auto Scaling group", "A pool of instances that grows and shrinks with demand", "Auto Scaling keeps capacity matched to load and replaces unhealthy instances."},
				{"Amazon VPC", "An isolated virtual network for your AWS resources", "A VPC gives you private address space, subnets, and routing control."},
				{"Amazon RDS", "A managed relational database service", "RDS handles backups, patching, and failover for engines like PostgreSQL."},
			},
			Recall: []string{
				"Which statement correctly describes %s?",
				"What is %s?",
			},
			Applied: []string{
				"An architecture pairs %s with %s. Which statement about the first is correct?",
				"Migrating a web app touches %s before %s. What does the first give you?",
			},
			Distractors: []string{
				"A service that requires manual capacity planning",
				"A database you must patch yourself",
			},
		},
		quiz.DifficultyHard: {
			Cards: []Card{
				{"an availability zone", "One or more isolated data centers within a region", "Spreading instances across zones survives the loss of a whole data center."},
				{"eventual consistency", "Reads may briefly return stale data after a write", "Replicas converge over time; a read right after a write may miss it."},
				{"a VPC peering connection", "A private network link between two VPCs", "Peering routes traffic privately without traversing the public internet, and it is not transitive."},
				{"an IAM assume-role policy", "A trust policy stating which principals may take on a role", "Assume-role trust is what lets one account or service act with another's permissions."},
			},
			Recall: []string{
				"Which statement correctly characterizes %s?",
				"What is %s?",
			},
			Applied: []string{
				"A multi-account design leans on %s plus %s. Which statement about the first is correct?",
				"Designing for failure weighs %s against %s. What does the first mean?",
			},
			Distractors: []string{
				"A guarantee that every read sees the latest write",
				"A link that automatically spans all regions",
			},
		},
	},
}

var dockerEntry = Entry{
	Topic: "docker",
	Levels: map[quiz.Difficulty]LevelSet{
		quiz.DifficultyEasy: {
			Cards: []Card{
				{"a container", "An isolated process with its own filesystem, built from an image", "Containers share the host kernel but see their own filesystem and network."},
				{"an image", "A read-only template that containers are started from", "An image bundles the application and everything it needs to run."},
				{"a Dockerfile", "A text file of instructions for building an image", "Each Dockerfile instruction adds a layer to the resulting image."},
				{"Docker Hub", "A public registry for sharing images", "docker pull fetches images from a registry such as Docker Hub."},
			},
			Recall: []string{
				"In Docker, what is %s?",
				"Which statement best describes %s?",
			},
			Applied: []string{
				"A workflow builds %s from %s. Which statement about the first is correct?",
				"Shipping an app involves %s and %s. What is the first?",
			},
			Distractors: []string{
				"A full virtual machine with its own kernel",
				"A tool for editing source code",
			},
		},
		quiz.DifficultyMedium: {
			Cards: []Card{
				{"a volume", "Storage that persists independently of any container's lifecycle", "Volumes survive container removal, so data outlives the process."},
				{"a bind mount", "Mapping a host directory directly into a container", "Bind mounts expose a host path inside the container at a chosen location."},
				{"docker compose", "A tool for defining and running multi-container applications", "Compose describes services, networks, and volumes in one YAML file."},
				{"an image layer", "One cached filesystem change produced by a build instruction", "Unchanged layers are reused from cache, which keeps rebuilds fast."},
			},
			Recall: []string{
				"Which statement correctly describes %s?",
				"What is %s?",
			},
			Applied: []string{
				"A dev setup combines %s with %s. Which statement about the first is correct?",
				"Speeding up builds involves %s rather than %s. What does it do?",
			},
			Distractors: []string{
				"Storage that is erased on every container restart",
				"A tool that replaces the container runtime",
			},
		},
		quiz.DifficultyHard: {
			Cards: []Card{
				{"a multi-stage build", "Using intermediate build images and copying only artifacts into the final image", "Multi-stage builds drop compilers and build deps from the shipped image."},
				{"a container network namespace", "The isolated network stack a container sees", "Each container gets its own interfaces, routes, and ports unless namespaces are shared."},
				{"an OCI image manifest", "The JSON document listing an image's layers and configuration", "Registries and runtimes agree on images through the OCI manifest format."},
				{"a healthcheck", "A command the runtime runs periodically to judge container health", "Orchestrators use healthcheck status to restart or reroute around bad containers."},
			},
			Recall: []string{
				"Which statement correctly characterizes %s?",
				"What is %s?",
			},
			Applied: []string{
				"Hardening an image uses %s along with %s. Which statement about the first is correct?",
				"Debugging connectivity means inspecting %s before %s. What is it?",
			},
			Distractors: []string{
				"A build mode that always disables layer caching",
				"A namespace shared by every container on the host",
			},
		},
	},
}

// genericEntry serves topics the bank does not know. Its wording folds
// the requested topic name into each question, so unknown topics still
// get on-topic phrasing.
var genericEntry = Entry{
	Topic: "",
	Levels: map[quiz.Difficulty]LevelSet{
		quiz.DifficultyEasy: {
			Cards: []Card{
				{"a core definition", "A precise statement of what a term means", "Definitions anchor every later argument about a subject."},
				{"a basic example", "A concrete instance that illustrates an idea", "Examples make abstract ideas checkable."},
				{"common terminology", "The shared vocabulary practitioners use", "Shared vocabulary keeps discussions unambiguous."},
				{"a fundamental principle", "A rule the rest of the subject builds on", "Fundamental principles explain why the standard methods work."},
			},
			Recall: []string{
				"When studying %s, which statement about it is accurate?",
				"Which of the following best describes %s?",
			},
			Applied: []string{
				"Learning a new subject starts with %s before %s. Which statement about the first is correct?",
				"A study plan covers %s alongside %s. What does the first give you?",
			},
			Distractors: []string{
				"Something that only experts need to know",
				"A detail with no practical relevance",
			},
		},
		quiz.DifficultyMedium: {
			Cards: []Card{
				{"an underlying mechanism", "How a technique actually achieves its effect", "Knowing the mechanism predicts when a technique will and will not work."},
				{"a common pitfall", "A mistake practitioners repeatedly make", "Known pitfalls are cheaper to learn from reading than from experience."},
				{"a trade-off", "A choice where improving one property costs another", "Most design decisions balance competing properties."},
				{"a standard method", "The widely accepted way to approach a class of problems", "Standard methods encode lessons the field has already paid for."},
			},
			Recall: []string{
				"Which statement correctly describes %s?",
				"In practice, what is %s?",
			},
			Applied: []string{
				"Solving a real problem weighs %s against %s. Which statement about the first is correct?",
				"A review checklist covers %s and %s. What does the first mean?",
			},
			Distractors: []string{
				"A rule with no known exceptions",
				"A practice that has been fully automated away",
			},
		},
		quiz.DifficultyHard: {
			Cards: []Card{
				{"an edge case", "An input at the boundary of what a method handles", "Edge cases are where otherwise sound approaches quietly break."},
				{"a limiting assumption", "A condition a result silently depends on", "Results stop holding the moment their assumptions do."},
				{"a failure mode", "A characteristic way an approach breaks down", "Knowing the failure modes tells you what to monitor for."},
				{"an advanced optimization", "A refinement that improves results at the cost of complexity", "Advanced optimizations pay off only once the basics are solid."},
			},
			Recall: []string{
				"Which statement correctly characterizes %s?",
				"At an advanced level, what is %s?",
			},
			Applied: []string{
				"A deep analysis contrasts %s with %s. Which statement about the first is correct?",
				"An expert checks %s before reaching for %s. What is the first?",
			},
			Distractors: []string{
				"A concern that disappears at scale",
				"Something covered fully by introductory material",
			},
		},
	},
}
