package buildinfo

const Graffiti = " _  __ ___  ___    _   _  _  ___ ___ \n| |/ /|   \\| _ \\  /_\\ | \\| |/ __| __|\n| ' < | |) |   / / _ \\| .` | (_ | _| \n|_|\\_\\|___/|_|_\\/_/ \\_\\_|\\_|\\___|___|\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "KDRANGE"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo

func (b buildinfo) String() string {
	if b.Time() == "" {
		return b.Name() + " " + b.Tag()
	}
	return b.Name() + " " + b.Tag() + " (" + b.Time() + ")"
}
