package constant

// AsciiArtLogo is the application's banner shown in the root command help.
const AsciiArtLogo = `
   _/_/_/  _/                            _/
_/      _/_/_/_/    _/_/      _/_/_/  _/_/_/    _/    _/
 _/_/    _/      _/_/_/_/  _/    _/  _/    _/  _/    _/
    _/  _/      _/        _/    _/  _/    _/  _/    _/
_/_/_/    _/_/    _/_/_/    _/_/_/  _/_/_/      _/_/_/
                                                   _/
   play                                       _/_/`
